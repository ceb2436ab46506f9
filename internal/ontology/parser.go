// Package ontology parses the plaintext ontology language and holds the
// resulting entities, predicates and values.
//
// Three sentence shapes are recognised:
//
//	A thing is <entity>.
//	A thing about <entity> is <predicate>.
//	<entity> <predicate> <value>
//
// The third shape has no keywords. It is resolved by prefix matching against
// entities and predicates declared on earlier lines.
package ontology

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// entityPattern matches "A thing is <X>."
var entityPattern = regexp.MustCompile(`(?i)^A thing is (.+)\.$`)

// predicatePattern matches "A thing about <E> is <P>." with E captured lazily
var predicatePattern = regexp.MustCompile(`(?i)^A thing about (.+?) is (.+)\.$`)

// maxLineBytes bounds a single source line
const maxLineBytes = 1 << 20

// Kind classifies what a line did to the store
type Kind string

const (
	KindSkipped           Kind = "skipped"            // Blank or comment line
	KindEntityDeclared    Kind = "entity_declared"    // A thing is X.
	KindPredicateDeclared Kind = "predicate_declared" // A thing about E is P.
	KindValueAssigned     Kind = "value_assigned"     // E P value
	KindUnrecognized      Kind = "unrecognized"       // No shape matched
)

// Result describes the outcome of parsing one line
type Result struct {
	Kind      Kind
	Entity    string
	Predicate string
	Value     string
	Err       error // Set only for KindUnrecognized
}

// Diagnostic records a source line that could not be parsed
type Diagnostic struct {
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
	Err  error  `json:"-" yaml:"-"`
}

// Reason returns the diagnostic error message
func (d Diagnostic) Reason() string {
	if d.Err == nil {
		return ErrUnrecognized.Error()
	}
	return d.Err.Error()
}

// Parser feeds lines into a Store
type Parser struct {
	store       *Store
	logger      *slog.Logger
	diagnostics []Diagnostic
}

// NewParser creates a parser writing into store. A nil logger falls back to
// slog.Default().
func NewParser(store *Store, logger *slog.Logger) *Parser {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{store: store, logger: logger}
}

// Store returns the store the parser writes into
func (p *Parser) Store() *Store {
	return p.store
}

// Diagnostics returns the lines that could not be parsed, in file order
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// ParseFile parses an ontology file. Failing to open or read the file is
// fatal; unparseable lines are not.
func (p *Parser) ParseFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ontology file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := p.ParseReader(ctx, f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ParseReader feeds every line of r to the parser in order
func (p *Parser) ParseReader(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		p.Feed(lineNo, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return nil
}

// Feed parses one raw source line. Blank and comment lines are skipped.
// An unrecognized line is logged and recorded as a diagnostic; it never
// stops parsing.
func (p *Parser) Feed(lineNo int, raw string) Result {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Result{Kind: KindSkipped}
	}

	res := p.ParseLine(line)
	if res.Kind == KindUnrecognized {
		p.diagnostics = append(p.diagnostics, Diagnostic{Line: lineNo, Text: line, Err: res.Err})
		p.logger.Warn("could not parse line",
			slog.Int("line", lineNo),
			slog.String("text", line),
			slog.String("error", res.Err.Error()))
		return res
	}

	p.logger.Debug("parsed line",
		slog.Int("line", lineNo),
		slog.String("kind", string(res.Kind)))
	return res
}

// ParseLine classifies a trimmed, non-comment line and applies it to the
// store. Shapes are tried in priority order and the first match wins; a
// declaration whose name trims to empty is rejected without trying the
// remaining shapes.
func (p *Parser) ParseLine(line string) Result {
	if m := entityPattern.FindStringSubmatch(line); m != nil {
		entity := strings.TrimSpace(m[1])
		if entity == "" {
			return Result{Kind: KindUnrecognized, Err: ErrEmptyName}
		}
		p.store.AddEntity(entity)
		return Result{Kind: KindEntityDeclared, Entity: entity}
	}

	if m := predicatePattern.FindStringSubmatch(line); m != nil {
		entity := strings.TrimSpace(m[1])
		predicate := strings.TrimSpace(m[2])
		if entity == "" || predicate == "" {
			return Result{Kind: KindUnrecognized, Err: ErrEmptyName}
		}
		p.store.AddPredicate(entity, predicate)
		return Result{Kind: KindPredicateDeclared, Entity: entity, Predicate: predicate}
	}

	if entity, predicate, value, ok := p.resolve(line); ok {
		p.store.AddValue(entity, predicate, value)
		return Result{Kind: KindValueAssigned, Entity: entity, Predicate: predicate, Value: value}
	}

	return Result{Kind: KindUnrecognized, Err: ErrUnrecognized}
}

// resolve splits a value-assignment line into entity, predicate and value.
// Entities and then predicates are tried in lexicographic order; the first
// combination leaving a non-empty value wins. There is no backtracking and no
// longest-match preference, so a name that prefixes another name can capture
// its lines.
func (p *Parser) resolve(line string) (entity, predicate, value string, ok bool) {
	for _, e := range p.store.Entities() {
		if !hasPrefixFold(line, e) {
			continue
		}
		rest := strings.TrimSpace(line[len(e):])
		for _, pred := range p.store.Predicates(e) {
			if !hasPrefixFold(rest, pred) {
				continue
			}
			v := strings.TrimSpace(rest[len(pred):])
			if v != "" {
				return e, pred, v, true
			}
		}
	}
	return "", "", "", false
}

// hasPrefixFold reports whether s begins with prefix under Unicode case
// folding, comparing the first len(prefix) bytes of s.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
