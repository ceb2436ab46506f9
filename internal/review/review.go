// Package review gathers completeness judgments for predicates that have
// values.
package review

import (
	"context"
	"fmt"

	"github.com/ppiankov/ontologica/internal/ontology"
)

// Item is one (entity, predicate) pair presented for review
type Item struct {
	Entity    string
	Predicate string
	Values    []string
}

// Reviewer decides whether an item's values are complete
type Reviewer interface {
	Review(ctx context.Context, item Item) (bool, error)
}

// ReviewerFunc adapts a function to Reviewer
type ReviewerFunc func(ctx context.Context, item Item) (bool, error)

// Review calls f
func (f ReviewerFunc) Review(ctx context.Context, item Item) (bool, error) {
	return f(ctx, item)
}

// Observer is notified about each pair as the review walks the store. It is
// optional and exists so interactive front ends can print context.
type Observer interface {
	EntityStarted(entity string)
	Skipped(entity, predicate string)
}

// Run walks every owning entity and predicate in sorted order, asks the
// reviewer about each pair that has values, and records the verdict with
// SetComplete. Pairs without values are skipped: they already fail closure.
// The first reviewer error stops the walk; verdicts recorded so far are kept.
func Run(ctx context.Context, s *ontology.Store, r Reviewer, obs Observer) (int, error) {
	reviewed := 0
	for _, entity := range s.Owners() {
		if obs != nil {
			obs.EntityStarted(entity)
		}
		for _, predicate := range s.Predicates(entity) {
			if err := ctx.Err(); err != nil {
				return reviewed, err
			}

			values := s.Values(entity, predicate)
			if len(values) == 0 {
				if obs != nil {
					obs.Skipped(entity, predicate)
				}
				continue
			}

			complete, err := r.Review(ctx, Item{Entity: entity, Predicate: predicate, Values: values})
			if err != nil {
				return reviewed, fmt.Errorf("review %s / %s: %w", entity, predicate, err)
			}
			s.SetComplete(entity, predicate, complete)
			reviewed++
		}
	}
	return reviewed, nil
}
