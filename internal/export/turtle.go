package export

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/ppiankov/ontologica/internal/model"
)

const (
	// Namespace is the base IRI for exported terms
	Namespace = "urn:ontologica:"

	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
)

// EntityIRI returns the IRI of an entity
func EntityIRI(entity string) string {
	return Namespace + "entity:" + url.PathEscape(entity)
}

// PredicateIRI returns the IRI of a predicate scoped to its entity
func PredicateIRI(entity, predicate string) string {
	return Namespace + "predicate:" + url.PathEscape(entity) + "/" + url.PathEscape(predicate)
}

func writeTurtle(w io.Writer, o *model.Ontology) error {
	var sb strings.Builder

	sb.WriteString("@prefix rdf: <" + rdfNS + "> .\n")
	sb.WriteString("@prefix rdfs: <" + rdfsNS + "> .\n")
	sb.WriteString("@prefix ont: <" + Namespace + "> .\n\n")

	for _, e := range o.Entities {
		subject := "<" + EntityIRI(e.Name) + ">"
		fmt.Fprintf(&sb, "%s a ont:Entity ;\n    rdfs:label %s", subject, literal(e.Name))
		if !e.Declared {
			sb.WriteString(" ;\n    ont:declared false")
		}
		sb.WriteString(" .\n")

		for _, p := range e.Predicates {
			prop := "<" + PredicateIRI(e.Name, p.Name) + ">"
			fmt.Fprintf(&sb, "%s a rdf:Property ;\n    rdfs:label %s ;\n    rdfs:domain %s", prop, literal(p.Name), subject)
			if p.Complete != nil {
				fmt.Fprintf(&sb, " ;\n    ont:complete %t", *p.Complete)
			}
			sb.WriteString(" .\n")

			for _, v := range p.Values {
				fmt.Fprintf(&sb, "%s %s %s .\n", subject, prop, literal(v))
			}
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// literal quotes s as a Turtle string literal
func literal(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
