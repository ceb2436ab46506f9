package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/ontologica/internal/model"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists every supported output format
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// Extension returns the file extension for a report format
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatJSON:
		return ".json"
	case FormatYAML, "yml":
		return ".yaml"
	case FormatMarkdown, "md":
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Renderer writes reports in the supported formats
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes r to w in the given format
func (rd *Renderer) Render(w io.Writer, r *model.Report, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return rd.RenderText(w, r)
	case FormatJSON:
		return rd.RenderJSON(w, r)
	case FormatYAML, "yml":
		return rd.RenderYAML(w, r)
	case FormatMarkdown, "md":
		return rd.RenderMarkdown(w, r)
	case FormatHTML:
		return rd.RenderHTML(w, r)
	default:
		return fmt.Errorf("unknown output format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// RenderJSON writes the report as indented JSON
func (rd *Renderer) RenderJSON(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// RenderYAML writes the report as YAML
func (rd *Renderer) RenderYAML(w io.Writer, r *model.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// RenderStatus writes the status view: declared entities, then each owning
// entity's predicates with their value counts.
func (rd *Renderer) RenderStatus(w io.Writer, r *model.Report) error {
	pw := &printer{w: w}

	pw.printf("\n=== Ontology Status ===\n\n")

	pw.printf("Entities declared: %d\n", len(r.Entities))
	for _, entity := range r.Entities {
		pw.printf("  - %s\n", entity)
	}

	pw.printf("\nPredicates declared: %d\n", r.Summary.Predicates)
	for _, owner := range r.Owners {
		pw.printf("  %s:\n", owner.Name)
		for _, p := range owner.Predicates {
			status := "NO VALUES (not closed)"
			if p.Closed {
				status = fmt.Sprintf("%d value(s)", p.ValueCount)
			}
			pw.printf("    - %s: %s\n", p.Name, status)
		}
	}

	pw.printf("\n")
	return pw.err
}

// RenderText writes the full report: closure, completeness and summary
func (rd *Renderer) RenderText(w io.Writer, r *model.Report) error {
	pw := &printer{w: w}

	pw.printf("\n=== Ontology Report ===\n\n")

	if r.Summary.Unclosed > 0 {
		pw.printf("⚠️  PREDICATES NOT CLOSED (need at least one value):\n\n")
		for _, owner := range r.Owners {
			preds := r.Unclosed[owner.Name]
			if len(preds) == 0 {
				continue
			}
			pw.printf("  Entity: %s\n", owner.Name)
			for _, p := range preds {
				pw.printf("    - %s\n", p)
			}
		}
		pw.printf("\n")
	} else {
		pw.printf("✓ All predicates are closed (have at least one value)\n\n")
	}

	if len(r.Incomplete) > 0 {
		pw.printf("⚠️  PREDICATES MARKED AS INCOMPLETE:\n\n")
		for _, ref := range r.Incomplete {
			pw.printf("  %s / %s\n", ref.Entity, ref.Predicate)
		}
		pw.printf("\n")
	} else if len(r.Complete) > 0 {
		pw.printf("✓ All checked predicates are marked as complete\n\n")
	}

	pw.printf("Summary:\n")
	pw.printf("  Entities: %d\n", r.Summary.Entities)
	pw.printf("  Predicates: %d\n", r.Summary.Predicates)
	pw.printf("  Values: %d\n", r.Summary.Values)
	if r.Summary.Unclosed > 0 {
		pw.printf("  Unclosed predicates: %d\n", r.Summary.Unclosed)
	}
	if r.Summary.Incomplete > 0 {
		pw.printf("  Incomplete predicates: %d\n", r.Summary.Incomplete)
	}

	return pw.err
}

// RenderMarkdown writes the report as a Markdown document
func (rd *Renderer) RenderMarkdown(w io.Writer, r *model.Report) error {
	pw := &printer{w: w}

	title := "Ontology Report"
	if r.Source != "" {
		title += ": " + r.Source
	}
	pw.printf("# %s\n\n", title)
	pw.printf("Generated %s (run `%s`)\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"), r.RunID)

	pw.printf("## Summary\n\n")
	pw.printf("| Metric | Count |\n|---|---|\n")
	pw.printf("| Entities | %d |\n", r.Summary.Entities)
	pw.printf("| Predicates | %d |\n", r.Summary.Predicates)
	pw.printf("| Values | %d |\n", r.Summary.Values)
	pw.printf("| Unclosed | %d |\n", r.Summary.Unclosed)
	pw.printf("| Reviewed | %d |\n", r.Summary.Reviewed)
	pw.printf("| Incomplete | %d |\n\n", r.Summary.Incomplete)

	if r.Score != nil {
		pw.printf("## Closure Index: %d/100 (%s confidence)\n\n", r.Score.Index, r.Score.Confidence)
		pw.printf("| Component | Points | Detail |\n|---|---|---|\n")
		for _, c := range r.Score.Components {
			pw.printf("| %s | %d/%d | %s |\n", c.Name, c.Points, c.Max, c.Description)
		}
		pw.printf("\n")
	}

	pw.printf("## Predicates\n\n")
	for _, owner := range r.Owners {
		pw.printf("### %s\n\n", owner.Name)
		if !owner.Declared {
			pw.printf("_Not declared as an entity._\n\n")
		}
		for _, p := range owner.Predicates {
			mark := "✓"
			if !p.Closed {
				mark = "⚠️"
			}
			pw.printf("- %s **%s**: %s\n", mark, p.Name, predicateState(p))
			for _, v := range p.Values {
				pw.printf("  - %s\n", v)
			}
		}
		pw.printf("\n")
	}

	if len(r.Signals) > 0 {
		pw.printf("## Signals\n\n")
		for _, s := range r.Signals {
			pw.printf("- `%s` (%s): %s\n", s.Type, s.Severity, s.Description)
		}
		pw.printf("\n")
	}

	return pw.err
}

// predicateState describes closure and review state in a few words
func predicateState(p model.PredicateStatus) string {
	state := "not closed"
	if p.Closed {
		state = fmt.Sprintf("%d value(s)", p.ValueCount)
	}
	if p.Complete != nil {
		if *p.Complete {
			state += ", complete"
		} else {
			state += ", incomplete"
		}
	}
	return state
}

// printer accumulates the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}
