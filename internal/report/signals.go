package report

import (
	"fmt"
	"sort"

	"github.com/ppiankov/ontologica/internal/model"
)

// BuildSignals derives lint signals from a built report. Warnings come first,
// then info signals; within a severity the order follows the report.
func BuildSignals(r *model.Report) []model.Signal {
	var signals []model.Signal

	entities := make([]string, 0, len(r.Unclosed))
	for entity := range r.Unclosed {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	for _, entity := range entities {
		for _, predicate := range r.Unclosed[entity] {
			signals = append(signals, model.Signal{
				Type:        model.SignalUnclosedPredicate,
				Severity:    model.SeverityWarning,
				Description: fmt.Sprintf("%s / %s has no values", entity, predicate),
				Entity:      entity,
				Predicate:   predicate,
			})
		}
	}

	for _, ref := range r.Incomplete {
		signals = append(signals, model.Signal{
			Type:        model.SignalIncompletePredicate,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%s / %s was marked incomplete", ref.Entity, ref.Predicate),
			Entity:      ref.Entity,
			Predicate:   ref.Predicate,
		})
	}

	for _, owner := range r.Owners {
		if owner.Declared {
			continue
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalUndeclaredEntity,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("%s owns predicates but was never declared with \"A thing is %s.\"", owner.Name, owner.Name),
			Entity:      owner.Name,
		})
	}

	for _, d := range r.Diagnostics {
		signals = append(signals, model.Signal{
			Type:        model.SignalUnrecognizedLine,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("line %d: %s", d.Line, d.Reason),
			Line:        d.Line,
		})
	}

	return signals
}
