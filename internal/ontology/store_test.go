package ontology

import (
	"reflect"
	"testing"
)

func TestStore_LazyCreate(t *testing.T) {
	s := NewStore()
	s.AddValue("ghost", "haunts", "the attic")

	if s.HasEntity("ghost") {
		t.Error("AddValue must not declare the entity")
	}
	if got := s.Values("ghost", "haunts"); !reflect.DeepEqual(got, []string{"the attic"}) {
		t.Errorf("expected [the attic], got %v", got)
	}
	if s.PredicateCount() != 0 {
		t.Errorf("AddValue must not declare the predicate, got %d", s.PredicateCount())
	}
	if s.ValueCount() != 1 {
		t.Errorf("expected 1 value, got %d", s.ValueCount())
	}
}

func TestStore_ValuesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddValue("a", "b", "c")

	vals := s.Values("a", "b")
	vals[0] = "mutated"

	if got := s.Values("a", "b"); got[0] != "c" {
		t.Errorf("store was mutated through returned slice: %v", got)
	}
}

func TestStore_CaseSensitiveStorage(t *testing.T) {
	s := NewStore()
	s.AddEntity("Math")
	s.AddEntity("math")

	if got := s.Entities(); !reflect.DeepEqual(got, []string{"Math", "math"}) {
		t.Errorf("expected both casings stored, got %v", got)
	}
}

func TestStore_CompletenessFlags(t *testing.T) {
	s := NewStore()

	if _, ok := s.Complete("a", "b"); ok {
		t.Error("unreviewed pair must report ok=false")
	}

	s.SetComplete("z", "y", true)
	s.SetComplete("a", "b", false)

	complete, ok := s.Complete("a", "b")
	if !ok || complete {
		t.Errorf("expected reviewed and incomplete, got complete=%v ok=%v", complete, ok)
	}

	want := []Pair{{Entity: "a", Predicate: "b"}, {Entity: "z", Predicate: "y"}}
	if got := s.Reviewed(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStore_OwnersIncludeUndeclared(t *testing.T) {
	s := NewStore()
	s.AddEntity("b")
	s.AddPredicate("c", "p")
	s.AddPredicate("b", "q")
	s.AddPredicate("b", "q")

	if got := s.Owners(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("expected owners [b c], got %v", got)
	}
	if s.PredicateCount() != 2 {
		t.Errorf("expected 2 predicates, got %d", s.PredicateCount())
	}
}

func TestCheckClosure(t *testing.T) {
	s := NewStore()
	s.AddEntity("mathematics")
	s.AddPredicate("mathematics", "what it is")
	s.AddPredicate("mathematics", "what it's used for")
	s.AddPredicate("logic", "its rules")
	s.AddPredicate("art", "its forms")
	s.AddValue("mathematics", "what it is", "a formal science")
	s.AddValue("art", "its forms", "painting")

	got := CheckClosure(s)
	want := map[string][]string{
		"mathematics": {"what it's used for"},
		"logic":       {"its rules"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if UnclosedCount(got) != 2 {
		t.Errorf("expected 2 unclosed, got %d", UnclosedCount(got))
	}

	s.AddValue("logic", "its rules", "modus ponens")
	if _, ok := CheckClosure(s)["logic"]; ok {
		t.Error("closure must be recomputed from current state")
	}
}
