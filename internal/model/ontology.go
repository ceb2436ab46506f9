package model

// Ontology is a serialisable snapshot of a parsed ontology
type Ontology struct {
	Source   string           `json:"source,omitempty" yaml:"source,omitempty"`
	Entities []OntologyEntity `json:"entities" yaml:"entities"`
}

// OntologyEntity is one entity with its predicates. Declared is false for
// entities that only appear as predicate owners.
type OntologyEntity struct {
	Name       string              `json:"name" yaml:"name"`
	Declared   bool                `json:"declared" yaml:"declared"`
	Predicates []OntologyPredicate `json:"predicates,omitempty" yaml:"predicates,omitempty"`
}

// OntologyPredicate is one predicate with its ordered values
type OntologyPredicate struct {
	Name     string   `json:"name" yaml:"name"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
	Complete *bool    `json:"complete,omitempty" yaml:"complete,omitempty"`
}
