// Package export serialises a parsed ontology to interchange formats.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/ontology"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for unknown export formats
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format identifies an export serialisation
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatJSONL  Format = "jsonl"
	FormatTurtle Format = "turtle"
	FormatSQLite Format = "sqlite"
)

// FormatInfo describes an export format
type FormatInfo struct {
	Name        Format
	Extension   string
	Description string
	Binary      bool // Requires a file path rather than a stream
}

// FormatRegistry lists every supported format
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON:   {Name: FormatJSON, Extension: ".json", Description: "Nested JSON document"},
	FormatYAML:   {Name: FormatYAML, Extension: ".yaml", Description: "Nested YAML document"},
	FormatJSONL:  {Name: FormatJSONL, Extension: ".jsonl", Description: "One JSON record per entity, predicate and value"},
	FormatTurtle: {Name: FormatTurtle, Extension: ".ttl", Description: "RDF Turtle"},
	FormatSQLite: {Name: FormatSQLite, Extension: ".db", Description: "SQLite database", Binary: true},
}

// ParseFormat resolves a format name, accepting common aliases
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// FormatNames returns the registered format names, sorted
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the store into a serialisable ontology. Entities that only
// own predicates are included with Declared=false.
func Snapshot(s *ontology.Store, source string) *model.Ontology {
	names := make(map[string]bool)
	for _, e := range s.Entities() {
		names[e] = true
	}
	for _, e := range s.Owners() {
		if !names[e] {
			names[e] = false
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	o := &model.Ontology{Source: source, Entities: make([]model.OntologyEntity, 0, len(sorted))}
	for _, name := range sorted {
		ent := model.OntologyEntity{Name: name, Declared: names[name]}
		for _, pred := range s.Predicates(name) {
			op := model.OntologyPredicate{Name: pred, Values: s.Values(name, pred)}
			if complete, ok := s.Complete(name, pred); ok {
				op.Complete = &complete
			}
			ent.Predicates = append(ent.Predicates, op)
		}
		o.Entities = append(o.Entities, ent)
	}
	return o
}

// Write serialises o to w. Binary formats are rejected; use WriteFile.
func Write(w io.Writer, o *model.Ontology, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSONL:
		return writeJSONL(w, o)
	case FormatTurtle:
		return writeTurtle(w, o)
	case FormatSQLite:
		return fmt.Errorf("%w: %s needs a file path", ErrUnsupportedFormat, format)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes o to path. Stream formats are written atomically via a
// temp file and rename; an existing file at path is replaced.
func WriteFile(ctx context.Context, path string, o *model.Ontology, format Format) error {
	if format == FormatSQLite {
		return writeSQLite(ctx, path, o)
	}
	if _, ok := FormatRegistry[format]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ontologica-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, o, format); err != nil {
		return fail(fmt.Errorf("writing %s: %w", format, err))
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
