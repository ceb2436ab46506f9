package ontology

// CheckClosure returns, for each entity owning at least one predicate without
// values, the sorted list of those predicates. Entities whose predicates are
// all closed are omitted. The result is recomputed from the store each call.
func CheckClosure(s *Store) map[string][]string {
	unclosed := make(map[string][]string)
	for _, entity := range s.Owners() {
		for _, predicate := range s.Predicates(entity) {
			if !s.IsClosed(entity, predicate) {
				unclosed[entity] = append(unclosed[entity], predicate)
			}
		}
	}
	return unclosed
}

// IsClosed reports whether the pair has at least one recorded value
func (s *Store) IsClosed(entity, predicate string) bool {
	return len(s.values[Pair{Entity: entity, Predicate: predicate}]) > 0
}

// UnclosedCount is the total number of predicates without values
func UnclosedCount(unclosed map[string][]string) int {
	n := 0
	for _, preds := range unclosed {
		n += len(preds)
	}
	return n
}
