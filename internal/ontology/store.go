package ontology

import "sort"

// Pair identifies a predicate by its owning entity. The predicate text alone
// carries no meaning outside its pair.
type Pair struct {
	Entity    string
	Predicate string
}

// Store holds entities, their predicates, recorded values and completeness
// flags. All writes create missing containers lazily. A Store has a single
// owner and is not safe for concurrent use.
type Store struct {
	entities   map[string]struct{}
	predicates map[string]map[string]struct{}
	values     map[Pair][]string
	complete   map[Pair]bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entities:   make(map[string]struct{}),
		predicates: make(map[string]map[string]struct{}),
		values:     make(map[Pair][]string),
		complete:   make(map[Pair]bool),
	}
}

// AddEntity records an entity. Re-adding is a no-op.
func (s *Store) AddEntity(name string) {
	s.entities[name] = struct{}{}
}

// AddPredicate records a predicate under entity. The entity does not have to
// be declared.
func (s *Store) AddPredicate(entity, predicate string) {
	set, ok := s.predicates[entity]
	if !ok {
		set = make(map[string]struct{})
		s.predicates[entity] = set
	}
	set[predicate] = struct{}{}
}

// AddValue appends a value to the (entity, predicate) list. Duplicates are kept.
func (s *Store) AddValue(entity, predicate, value string) {
	key := Pair{Entity: entity, Predicate: predicate}
	s.values[key] = append(s.values[key], value)
}

// HasEntity reports whether name was declared as an entity
func (s *Store) HasEntity(name string) bool {
	_, ok := s.entities[name]
	return ok
}

// Entities returns declared entities in lexicographic order
func (s *Store) Entities() []string {
	return sortedKeys(s.entities)
}

// Owners returns every entity that owns at least one predicate, declared or
// not, in lexicographic order.
func (s *Store) Owners() []string {
	owners := make([]string, 0, len(s.predicates))
	for entity := range s.predicates {
		owners = append(owners, entity)
	}
	sort.Strings(owners)
	return owners
}

// Predicates returns the predicates of entity in lexicographic order
func (s *Store) Predicates(entity string) []string {
	return sortedKeys(s.predicates[entity])
}

// Values returns a copy of the values recorded for the pair, in insertion order
func (s *Store) Values(entity, predicate string) []string {
	vals := s.values[Pair{Entity: entity, Predicate: predicate}]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// SetComplete records a completeness judgment for the pair
func (s *Store) SetComplete(entity, predicate string, complete bool) {
	s.complete[Pair{Entity: entity, Predicate: predicate}] = complete
}

// Complete returns the completeness flag for the pair. ok is false when the
// pair has not been reviewed.
func (s *Store) Complete(entity, predicate string) (complete bool, ok bool) {
	complete, ok = s.complete[Pair{Entity: entity, Predicate: predicate}]
	return complete, ok
}

// Reviewed returns all pairs carrying a completeness flag, sorted by entity
// then predicate.
func (s *Store) Reviewed() []Pair {
	pairs := make([]Pair, 0, len(s.complete))
	for p := range s.complete {
		pairs = append(pairs, p)
	}
	sortPairs(pairs)
	return pairs
}

// PredicateCount is the number of (entity, predicate) pairs declared
func (s *Store) PredicateCount() int {
	n := 0
	for _, set := range s.predicates {
		n += len(set)
	}
	return n
}

// ValueCount is the number of values recorded across all pairs, including
// pairs that were never declared.
func (s *Store) ValueCount() int {
	n := 0
	for _, vals := range s.values {
		n += len(vals)
	}
	return n
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Entity != pairs[j].Entity {
			return pairs[i].Entity < pairs[j].Entity
		}
		return pairs[i].Predicate < pairs[j].Predicate
	})
}
