package model

import "time"

// Report is the complete closure and completeness report for one ontology file
type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`             // Unique per report
	Source      string    `json:"source" yaml:"source"`             // File the ontology was read from
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"` // When the report was built

	Entities []string       `json:"entities" yaml:"entities"` // Declared entities, sorted
	Owners   []EntityStatus `json:"owners" yaml:"owners"`     // Entities owning predicates, sorted

	Unclosed   map[string][]string `json:"unclosed" yaml:"unclosed"`                         // Entity -> predicates without values
	Complete   []PairRef           `json:"complete,omitempty" yaml:"complete,omitempty"`     // Reviewed and judged complete
	Incomplete []PairRef           `json:"incomplete,omitempty" yaml:"incomplete,omitempty"` // Reviewed and judged incomplete

	Summary     Summary      `json:"summary" yaml:"summary"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"` // Unparsed source lines
	Signals     []Signal     `json:"signals,omitempty" yaml:"signals,omitempty"`
	Score       *Score       `json:"score,omitempty" yaml:"score,omitempty"`
}

// EntityStatus lists the predicates of one owning entity
type EntityStatus struct {
	Name       string            `json:"name" yaml:"name"`
	Declared   bool              `json:"declared" yaml:"declared"` // Declared with "A thing is"
	Predicates []PredicateStatus `json:"predicates" yaml:"predicates"`
}

// PredicateStatus reports values and review state of one predicate
type PredicateStatus struct {
	Name       string   `json:"name" yaml:"name"`
	ValueCount int      `json:"value_count" yaml:"value_count"`
	Values     []string `json:"values,omitempty" yaml:"values,omitempty"`
	Closed     bool     `json:"closed" yaml:"closed"`
	Complete   *bool    `json:"complete,omitempty" yaml:"complete,omitempty"` // nil when not reviewed
}

// PairRef names an (entity, predicate) pair
type PairRef struct {
	Entity    string `json:"entity" yaml:"entity"`
	Predicate string `json:"predicate" yaml:"predicate"`
}

// Summary holds aggregate counts
type Summary struct {
	Entities   int `json:"entities" yaml:"entities"`
	Predicates int `json:"predicates" yaml:"predicates"`
	Values     int `json:"values" yaml:"values"`
	Unclosed   int `json:"unclosed" yaml:"unclosed"`
	Incomplete int `json:"incomplete" yaml:"incomplete"`
	Reviewed   int `json:"reviewed" yaml:"reviewed"`
}

// Diagnostic is a source line the parser could not place
type Diagnostic struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
}

// Signal is a lint finding about the ontology
type Signal struct {
	Type        SignalType     `json:"type" yaml:"type"`
	Severity    SignalSeverity `json:"severity" yaml:"severity"`
	Description string         `json:"description" yaml:"description"`
	Entity      string         `json:"entity,omitempty" yaml:"entity,omitempty"`
	Predicate   string         `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Line        int            `json:"line,omitempty" yaml:"line,omitempty"`
}

// SignalType classifies a signal
type SignalType string

const (
	SignalUnclosedPredicate   SignalType = "unclosed_predicate"   // Predicate without values
	SignalIncompletePredicate SignalType = "incomplete_predicate" // Reviewer judged values incomplete
	SignalUndeclaredEntity    SignalType = "undeclared_entity"    // Predicate owner never declared
	SignalUnrecognizedLine    SignalType = "unrecognized_line"    // Parser could not place a line
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// HasWarnings reports whether any signal is a warning
func (r *Report) HasWarnings() bool {
	for _, s := range r.Signals {
		if s.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Score is the closure index of an ontology (0-100) with its breakdown
type Score struct {
	Index      int              `json:"index" yaml:"index"`
	Confidence string           `json:"confidence" yaml:"confidence"` // low, medium, high
	Components []ScoreComponent `json:"components" yaml:"components"`
}

// ScoreComponent is one weighted part of the closure index
type ScoreComponent struct {
	Name        string         `json:"name" yaml:"name"`
	Points      int            `json:"points" yaml:"points"`
	Max         int            `json:"max" yaml:"max"`
	Severity    SignalSeverity `json:"severity" yaml:"severity"`
	Description string         `json:"description" yaml:"description"`
	Formula     string         `json:"formula" yaml:"formula"`
}
