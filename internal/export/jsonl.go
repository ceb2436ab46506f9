package export

import (
	"encoding/json"
	"io"

	"github.com/ppiankov/ontologica/internal/model"
)

// Record kinds in JSONL output
const (
	KindEntity    = "entity"
	KindPredicate = "predicate"
	KindValue     = "value"
)

// Record is one JSONL line
type Record struct {
	Kind      string `json:"kind"`
	Entity    string `json:"entity"`
	Predicate string `json:"predicate,omitempty"`
	Declared  *bool  `json:"declared,omitempty"`
	Complete  *bool  `json:"complete,omitempty"`
	Ordinal   *int   `json:"ordinal,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Records flattens o into entity, predicate and value records in a stable
// order
func Records(o *model.Ontology) []Record {
	var recs []Record
	for _, e := range o.Entities {
		declared := e.Declared
		recs = append(recs, Record{Kind: KindEntity, Entity: e.Name, Declared: &declared})
		for _, p := range e.Predicates {
			recs = append(recs, Record{Kind: KindPredicate, Entity: e.Name, Predicate: p.Name, Complete: p.Complete})
			for i, v := range p.Values {
				ordinal := i
				recs = append(recs, Record{Kind: KindValue, Entity: e.Name, Predicate: p.Name, Ordinal: &ordinal, Value: v})
			}
		}
	}
	return recs
}

func writeJSONL(w io.Writer, o *model.Ontology) error {
	enc := json.NewEncoder(w)
	for _, rec := range Records(o) {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
