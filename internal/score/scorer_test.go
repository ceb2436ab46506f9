package score

import (
	"testing"

	"github.com/ppiankov/ontologica/internal/model"
)

func owners(declared ...bool) []model.EntityStatus {
	out := make([]model.EntityStatus, len(declared))
	for i, d := range declared {
		out[i] = model.EntityStatus{Name: string(rune('a' + i)), Declared: d}
	}
	return out
}

func TestScorer_Calculate_FullyClosedAndReviewed(t *testing.T) {
	r := &model.Report{
		Owners:  owners(true, true),
		Summary: model.Summary{Entities: 2, Predicates: 4, Values: 6, Reviewed: 4},
	}

	result := NewScorer().Calculate(r)

	if result.Index != 100 {
		t.Errorf("Expected index 100, got %d", result.Index)
	}
	if result.Confidence != "high" {
		t.Errorf("Expected high confidence, got %s", result.Confidence)
	}
	if len(result.Components) != 3 {
		t.Errorf("Expected 3 components, got %d", len(result.Components))
	}
}

func TestScorer_Calculate_Unreviewed(t *testing.T) {
	// 1 of 2 predicates closed, nothing reviewed, owner declared
	r := &model.Report{
		Owners:  owners(true),
		Summary: model.Summary{Entities: 1, Predicates: 2, Values: 1, Unclosed: 1},
	}

	result := NewScorer().Calculate(r)

	// closure 30 + completeness 15 (assumed) + declaration 10
	if result.Index != 55 {
		t.Errorf("Expected index 55, got %d", result.Index)
	}
	if result.Confidence != "low" {
		t.Errorf("Expected low confidence without review, got %s", result.Confidence)
	}

	closure := result.Components[0]
	if closure.Name != ComponentClosure || closure.Severity != model.SeverityWarning {
		t.Errorf("Expected warning closure component, got %+v", closure)
	}
	if closure.Description != "Closed predicates: 1/2 (50%)" {
		t.Errorf("Unexpected closure description: %s", closure.Description)
	}
}

func TestScorer_Calculate_Empty(t *testing.T) {
	result := NewScorer().Calculate(&model.Report{})

	// Only the assumed completeness points remain
	if result.Index != 15 {
		t.Errorf("Expected index 15, got %d", result.Index)
	}
	if result.Components[0].Severity != model.SeverityCritical {
		t.Errorf("Expected critical closure severity, got %s", result.Components[0].Severity)
	}
	if result.Confidence != "low" {
		t.Errorf("Expected low confidence, got %s", result.Confidence)
	}
}

func TestScorer_Calculate_IncompleteAndUndeclared(t *testing.T) {
	r := &model.Report{
		Owners:  owners(true, false),
		Summary: model.Summary{Predicates: 2, Values: 2, Reviewed: 2, Incomplete: 1},
	}

	result := NewScorer().Calculate(r)

	// closure 60 + completeness 15 + declaration 5
	if result.Index != 80 {
		t.Errorf("Expected index 80, got %d", result.Index)
	}
	if result.Components[1].Severity != model.SeverityWarning {
		t.Errorf("Expected warning for incomplete predicates, got %s", result.Components[1].Severity)
	}
	if result.Components[2].Description != "Declared owners: 1/2" {
		t.Errorf("Unexpected declaration description: %s", result.Components[2].Description)
	}
}

func TestScorer_ParsePenalty(t *testing.T) {
	tests := []struct {
		diagnostics int
		wantIndex   int
	}{
		{0, 100},
		{3, 97},
		{25, 90},
	}

	for _, tt := range tests {
		r := &model.Report{
			Owners:      owners(true),
			Summary:     model.Summary{Predicates: 1, Values: 1, Reviewed: 1},
			Diagnostics: make([]model.Diagnostic, tt.diagnostics),
		}

		result := NewScorer().Calculate(r)
		if result.Index != tt.wantIndex {
			t.Errorf("%d diagnostics: expected index %d, got %d", tt.diagnostics, tt.wantIndex, result.Index)
		}

		hasPenalty := len(result.Components) == 4
		if hasPenalty != (tt.diagnostics > 0) {
			t.Errorf("%d diagnostics: penalty component present = %v", tt.diagnostics, hasPenalty)
		}
	}
}

func TestScorer_PenaltyNeverNegative(t *testing.T) {
	r := &model.Report{Diagnostics: make([]model.Diagnostic, 40)}

	result := NewScorer().Calculate(r)
	if result.Index != 5 {
		t.Errorf("Expected index 5 (15 assumed - 10 penalty), got %d", result.Index)
	}
}
