package ontology

import "errors"

var (
	// ErrUnrecognized marks a line that matches none of the sentence shapes
	ErrUnrecognized = errors.New("line matches no declaration shape")

	// ErrEmptyName marks a declaration whose entity or predicate is blank
	ErrEmptyName = errors.New("declaration has an empty name")
)
