// Package pipeline wires parsing, review and reporting into one check.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/ontology"
	"github.com/ppiankov/ontologica/internal/report"
	"github.com/ppiankov/ontologica/internal/review"
)

// Pipeline orchestrates parse, review and report for ontology files
type Pipeline struct {
	config   *model.Config
	reviewer review.Reviewer
	observer review.Observer
	renderer *report.Renderer
	logger   *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithReviewer sets the completeness reviewer. Without one, review is skipped.
func WithReviewer(r review.Reviewer) Option {
	return func(p *Pipeline) { p.reviewer = r }
}

// WithObserver receives review progress
func WithObserver(o review.Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	p := &Pipeline{
		config:   cfg,
		renderer: report.NewRenderer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session is one parsed ontology with its own store
type Session struct {
	Source string
	Parser *ontology.Parser
}

// Store returns the session's store
func (s *Session) Store() *ontology.Store {
	return s.Parser.Store()
}

// Parse reads an ontology file into a fresh store
func (p *Pipeline) Parse(ctx context.Context, path string) (*Session, error) {
	parser := ontology.NewParser(ontology.NewStore(), p.logger.With(slog.String("source", path)))
	if err := parser.ParseFile(ctx, path); err != nil {
		return nil, err
	}
	return &Session{Source: path, Parser: parser}, nil
}

// ParseReader reads an ontology from r into a fresh store
func (p *Pipeline) ParseReader(ctx context.Context, source string, r io.Reader) (*Session, error) {
	parser := ontology.NewParser(ontology.NewStore(), p.logger.With(slog.String("source", source)))
	if err := parser.ParseReader(ctx, r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return &Session{Source: source, Parser: parser}, nil
}

// Review runs the configured reviewer over the session. It is a no-op when no
// reviewer is configured.
func (p *Pipeline) Review(ctx context.Context, s *Session) error {
	if p.reviewer == nil {
		return nil
	}
	n, err := review.Run(ctx, s.Store(), p.reviewer, p.observer)
	if err != nil {
		return fmt.Errorf("review %s: %w", s.Source, err)
	}
	p.logger.Debug("review finished", slog.String("source", s.Source), slog.Int("reviewed", n))
	return nil
}

// Report builds the report for the session's current state
func (p *Pipeline) Report(s *Session) *model.Report {
	return report.Build(s.Store(), report.Options{
		Source:        s.Source,
		Diagnostics:   s.Parser.Diagnostics(),
		IncludeValues: p.config.Output.IncludeValues,
	})
}

// CheckFile parses, reviews and reports on one file
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	s, err := p.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := p.Review(ctx, s); err != nil {
		return nil, err
	}
	return p.Report(s), nil
}

// RenderStatus writes the status view
func (p *Pipeline) RenderStatus(w io.Writer, r *model.Report) error {
	return p.renderer.RenderStatus(w, r)
}

// RenderReport writes r in the configured output format
func (p *Pipeline) RenderReport(w io.Writer, r *model.Report) error {
	if err := p.renderer.Render(w, r, p.config.Output.Format); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
