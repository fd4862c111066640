package dims

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an ordered collection of dimensions with unique letters. The
// order of dimensions is the canonical axis layout for arrays built from
// the set; subsets keep the relative order of the parent.
type Set struct {
	list []*Dimension
}

// NewSet builds a set from the given dimensions, in order.
func NewSet(dimensions ...*Dimension) (*Set, error) {
	byLetter := make(map[string]*Dimension, len(dimensions))
	for _, d := range dimensions {
		if prev, ok := byLetter[d.letter]; ok {
			if !prev.SameItems(d) {
				return nil, fmt.Errorf("%w: letter %q used by %q and %q with different items",
					ErrConflict, d.letter, prev.name, d.name)
			}
			return nil, fmt.Errorf("%w: letter %q appears twice", ErrValidation, d.letter)
		}
		byLetter[d.letter] = d
	}
	return &Set{list: append([]*Dimension(nil), dimensions...)}, nil
}

// Empty returns the set of no dimensions, the dimensionality of a scalar.
func Empty() *Set { return &Set{} }

func (s *Set) Len() int { return len(s.list) }

// Dim returns the dimension at axis position i.
func (s *Set) Dim(i int) *Dimension { return s.list[i] }

// Letters returns the dimension letters in canonical order.
func (s *Set) Letters() []string {
	out := make([]string, len(s.list))
	for i, d := range s.list {
		out[i] = d.letter
	}
	return out
}

// Names returns the dimension names in canonical order.
func (s *Set) Names() []string {
	out := make([]string, len(s.list))
	for i, d := range s.list {
		out[i] = d.name
	}
	return out
}

// Shape returns the item count per axis, in canonical order.
func (s *Set) Shape() []int {
	out := make([]int, len(s.list))
	for i, d := range s.list {
		out[i] = d.Len()
	}
	return out
}

// Size returns the total number of coordinate combinations.
func (s *Set) Size() int {
	n := 1
	for _, d := range s.list {
		n *= d.Len()
	}
	return n
}

// Get looks a dimension up by letter or name.
func (s *Set) Get(key string) (*Dimension, error) {
	for _, d := range s.list {
		if d.letter == key || d.name == key {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in set (%s)", ErrNotFound, key, strings.Join(s.Letters(), ","))
}

// Index returns the axis position of the dimension with the given letter
// or name.
func (s *Set) Index(key string) (int, error) {
	for i, d := range s.list {
		if d.letter == key || d.name == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in set (%s)", ErrNotFound, key, strings.Join(s.Letters(), ","))
}

// Has reports whether the set contains a dimension with the given letter
// or name.
func (s *Set) Has(key string) bool {
	_, err := s.Index(key)
	return err == nil
}

// Subset extracts the named dimensions, keeping the set's canonical order
// regardless of the order the keys are given in.
func (s *Set) Subset(keys ...string) (*Set, error) {
	want := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		i, err := s.Index(k)
		if err != nil {
			return nil, err
		}
		want[i] = struct{}{}
	}
	out := make([]*Dimension, 0, len(want))
	for i, d := range s.list {
		if _, ok := want[i]; ok {
			out = append(out, d)
		}
	}
	return &Set{list: out}, nil
}

// Without returns the set with the named dimensions removed.
func (s *Set) Without(keys ...string) (*Set, error) {
	drop := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		i, err := s.Index(k)
		if err != nil {
			return nil, err
		}
		drop[i] = struct{}{}
	}
	out := make([]*Dimension, 0, len(s.list)-len(drop))
	for i, d := range s.list {
		if _, ok := drop[i]; !ok {
			out = append(out, d)
		}
	}
	return &Set{list: out}, nil
}

// Intersect returns the dimensions present in both sets, in the receiver's
// order. Shared letters must agree on items.
func (s *Set) Intersect(other *Set) (*Set, error) {
	out := make([]*Dimension, 0, len(s.list))
	for _, d := range s.list {
		o, err := other.Get(d.letter)
		if err != nil {
			continue
		}
		if !o.SameItems(d) {
			return nil, fmt.Errorf("%w: letter %q has items %v vs %v",
				ErrConflict, d.letter, d.items, o.items)
		}
		out = append(out, d)
	}
	return &Set{list: out}, nil
}

// Difference returns the receiver's dimensions whose letters are absent
// from other.
func (s *Set) Difference(other *Set) *Set {
	out := make([]*Dimension, 0, len(s.list))
	for _, d := range s.list {
		if !other.Has(d.letter) {
			out = append(out, d)
		}
	}
	return &Set{list: out}
}

// Union merges two sets into one canonical ordering. Shared letters must
// agree on item lists, otherwise ErrConflict is returned.
//
// The result order is a stable topological merge: the relative order of
// each input is preserved, and where the inputs impose no ordering the
// smaller letter comes first. This makes Union(a, b) and Union(b, a)
// identical, and sets cut from a common parent merge back into the
// parent's order.
func (s *Set) Union(other *Set) (*Set, error) {
	byLetter := make(map[string]*Dimension, len(s.list)+len(other.list))
	addAll := func(set *Set) error {
		for _, d := range set.list {
			if prev, ok := byLetter[d.letter]; ok {
				if !prev.SameItems(d) {
					return fmt.Errorf("%w: letter %q has items %v vs %v",
						ErrConflict, d.letter, prev.items, d.items)
				}
				continue
			}
			byLetter[d.letter] = d
		}
		return nil
	}
	if err := addAll(s); err != nil {
		return nil, err
	}
	if err := addAll(other); err != nil {
		return nil, err
	}

	// Precedence edges from consecutive axes of each input.
	succ := make(map[string]map[string]struct{})
	indeg := make(map[string]int, len(byLetter))
	for letter := range byLetter {
		indeg[letter] = 0
	}
	addEdges := func(set *Set) {
		for i := 1; i < len(set.list); i++ {
			from, to := set.list[i-1].letter, set.list[i].letter
			if succ[from] == nil {
				succ[from] = make(map[string]struct{})
			}
			if _, ok := succ[from][to]; !ok {
				succ[from][to] = struct{}{}
				indeg[to]++
			}
		}
	}
	addEdges(s)
	addEdges(other)

	ready := make([]string, 0, len(indeg))
	for letter, n := range indeg {
		if n == 0 {
			ready = append(ready, letter)
		}
	}
	out := make([]*Dimension, 0, len(byLetter))
	for len(out) < len(byLetter) {
		if len(ready) == 0 {
			// Contradictory orderings; fall back to letter order for the rest.
			for letter, n := range indeg {
				if n >= 0 {
					ready = append(ready, letter)
					indeg[letter] = -1
				}
			}
			sort.Strings(ready)
			for _, letter := range ready {
				out = append(out, byLetter[letter])
			}
			break
		}
		sort.Strings(ready)
		letter := ready[0]
		ready = ready[1:]
		indeg[letter] = -1
		out = append(out, byLetter[letter])
		for next := range succ[letter] {
			indeg[next]--
			if indeg[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	return &Set{list: out}, nil
}

// ContainsAll reports whether every dimension of other appears in the
// receiver with identical items.
func (s *Set) ContainsAll(other *Set) bool {
	for _, d := range other.list {
		mine, err := s.Get(d.letter)
		if err != nil || !mine.SameItems(d) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same dimensions in the same
// order.
func (s *Set) Equal(other *Set) bool {
	if len(s.list) != len(other.list) {
		return false
	}
	for i, d := range s.list {
		o := other.list[i]
		if d.letter != o.letter || !d.SameItems(o) {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	return "(" + strings.Join(s.Letters(), ",") + ")"
}
