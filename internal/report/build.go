// Package report derives closure and completeness reports from an ontology
// store and renders them.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/ontology"
	"github.com/ppiankov/ontologica/internal/score"
)

// Options controls report construction
type Options struct {
	Source        string
	Diagnostics   []ontology.Diagnostic
	IncludeValues bool
	Now           func() time.Time // Defaults to time.Now
}

// Build derives a report from the current contents of the store. It does not
// modify the store.
func Build(s *ontology.Store, opts Options) *model.Report {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	unclosed := ontology.CheckClosure(s)

	r := &model.Report{
		RunID:       uuid.NewString(),
		Source:      opts.Source,
		GeneratedAt: now().UTC(),
		Entities:    s.Entities(),
		Unclosed:    unclosed,
	}

	for _, entity := range s.Owners() {
		status := model.EntityStatus{
			Name:     entity,
			Declared: s.HasEntity(entity),
		}
		for _, predicate := range s.Predicates(entity) {
			values := s.Values(entity, predicate)
			ps := model.PredicateStatus{
				Name:       predicate,
				ValueCount: len(values),
				Closed:     len(values) > 0,
			}
			if opts.IncludeValues {
				ps.Values = values
			}
			if complete, ok := s.Complete(entity, predicate); ok {
				ps.Complete = &complete
			}
			status.Predicates = append(status.Predicates, ps)
		}
		r.Owners = append(r.Owners, status)
	}

	for _, pair := range s.Reviewed() {
		complete, _ := s.Complete(pair.Entity, pair.Predicate)
		ref := model.PairRef{Entity: pair.Entity, Predicate: pair.Predicate}
		if complete {
			r.Complete = append(r.Complete, ref)
		} else {
			r.Incomplete = append(r.Incomplete, ref)
		}
	}

	for _, d := range opts.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, model.Diagnostic{
			Line:   d.Line,
			Text:   d.Text,
			Reason: d.Reason(),
		})
	}

	r.Summary = model.Summary{
		Entities:   len(r.Entities),
		Predicates: s.PredicateCount(),
		Values:     s.ValueCount(),
		Unclosed:   ontology.UnclosedCount(unclosed),
		Incomplete: len(r.Incomplete),
		Reviewed:   len(r.Complete) + len(r.Incomplete),
	}
	r.Signals = BuildSignals(r)

	sc := score.NewScorer().Calculate(r)
	r.Score = &sc

	return r
}
