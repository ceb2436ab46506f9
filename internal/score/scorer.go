// Package score condenses a report into a 0-100 closure index.
package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/ontologica/internal/model"
)

// Component names
const (
	ComponentClosure      = "closure"
	ComponentCompleteness = "completeness"
	ComponentDeclaration  = "declaration"
	ComponentParse        = "parse_penalty"
)

// maxParsePenalty caps the deduction for unrecognized lines
const maxParsePenalty = 10

// Scorer calculates the closure index
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores a built report. It reads Summary, Owners and Diagnostics.
func (s *Scorer) Calculate(r *model.Report) model.Score {
	var components []model.ScoreComponent

	// 1. Closure (0-60 points)
	closure := s.calculateClosure(r.Summary)
	components = append(components, closure)

	// 2. Completeness (0-30 points)
	completeness := s.calculateCompleteness(r.Summary)
	components = append(components, completeness)

	// 3. Declaration (0-10 points)
	declaration := s.calculateDeclaration(r.Owners)
	components = append(components, declaration)

	total := closure.Points + completeness.Points + declaration.Points

	// 4. Unparsed lines (penalty)
	if penalty, ok := s.parsePenalty(len(r.Diagnostics)); ok {
		components = append(components, penalty)
		total += penalty.Points
		if total < 0 {
			total = 0
		}
	}

	return model.Score{
		Index:      total,
		Confidence: s.determineConfidence(total, r.Summary),
		Components: components,
	}
}

// calculateClosure scores the share of predicates with at least one value
func (s *Scorer) calculateClosure(sum model.Summary) model.ScoreComponent {
	if sum.Predicates == 0 {
		return model.ScoreComponent{
			Name:        ComponentClosure,
			Max:         60,
			Severity:    model.SeverityCritical,
			Description: "No predicates declared",
			Formula:     "closed / predicates * 60",
		}
	}

	closed := sum.Predicates - sum.Unclosed
	ratio := float64(closed) / float64(sum.Predicates)
	points := int(math.Floor(ratio * 60))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 1.0 {
		severity = model.SeverityWarning
	}

	return model.ScoreComponent{
		Name:        ComponentClosure,
		Points:      points,
		Max:         60,
		Severity:    severity,
		Description: fmt.Sprintf("Closed predicates: %d/%d (%.0f%%)", closed, sum.Predicates, ratio*100),
		Formula:     "closed / predicates * 60",
	}
}

// calculateCompleteness scores reviewed predicates judged complete. Without
// any review it assumes a moderate 15 points.
func (s *Scorer) calculateCompleteness(sum model.Summary) model.ScoreComponent {
	if sum.Reviewed == 0 {
		return model.ScoreComponent{
			Name:        ComponentCompleteness,
			Points:      15,
			Max:         30,
			Severity:    model.SeverityInfo,
			Description: "No completeness review (assuming moderate)",
			Formula:     "complete / reviewed * 30",
		}
	}

	complete := sum.Reviewed - sum.Incomplete
	ratio := float64(complete) / float64(sum.Reviewed)
	points := int(math.Floor(ratio * 30))

	severity := model.SeverityInfo
	if sum.Incomplete > 0 {
		severity = model.SeverityWarning
	}

	return model.ScoreComponent{
		Name:        ComponentCompleteness,
		Points:      points,
		Max:         30,
		Severity:    severity,
		Description: fmt.Sprintf("Complete predicates: %d/%d reviewed", complete, sum.Reviewed),
		Formula:     "complete / reviewed * 30",
	}
}

// calculateDeclaration scores predicate owners that were declared with
// "A thing is"
func (s *Scorer) calculateDeclaration(owners []model.EntityStatus) model.ScoreComponent {
	if len(owners) == 0 {
		return model.ScoreComponent{
			Name:        ComponentDeclaration,
			Max:         10,
			Severity:    model.SeverityInfo,
			Description: "No predicate owners",
			Formula:     "declared_owners / owners * 10",
		}
	}

	declared := 0
	for _, o := range owners {
		if o.Declared {
			declared++
		}
	}
	ratio := float64(declared) / float64(len(owners))
	points := int(math.Floor(ratio * 10))

	severity := model.SeverityInfo
	if declared < len(owners) {
		severity = model.SeverityWarning
	}

	return model.ScoreComponent{
		Name:        ComponentDeclaration,
		Points:      points,
		Max:         10,
		Severity:    severity,
		Description: fmt.Sprintf("Declared owners: %d/%d", declared, len(owners)),
		Formula:     "declared_owners / owners * 10",
	}
}

// parsePenalty deducts one point per unrecognized line, up to maxParsePenalty
func (s *Scorer) parsePenalty(unrecognized int) (model.ScoreComponent, bool) {
	if unrecognized == 0 {
		return model.ScoreComponent{}, false
	}

	penalty := unrecognized
	if penalty > maxParsePenalty {
		penalty = maxParsePenalty
	}

	return model.ScoreComponent{
		Name:        ComponentParse,
		Points:      -penalty,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("%d unrecognized line(s)", unrecognized),
		Formula:     "-min(unrecognized_lines, 10)",
	}, true
}

// determineConfidence stays low until every closed predicate has been reviewed
func (s *Scorer) determineConfidence(index int, sum model.Summary) string {
	closed := sum.Predicates - sum.Unclosed
	if sum.Predicates == 0 || sum.Reviewed < closed {
		return "low"
	}

	if index >= 80 {
		return "high"
	} else if index >= 60 {
		return "medium"
	}
	return "low"
}
