package dims

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Dimension is a named, lettered, ordered list of unique index items.
// It is immutable after construction; the item order defines the axis
// order of every array indexed by it.
type Dimension struct {
	name    string
	letter  string
	items   []string
	numeric []float64 // set for dimensions built from numeric items
}

// New builds a dimension from string items.
func New(name, letter string, items []string) (*Dimension, error) {
	d := &Dimension{name: name, letter: letter, items: append([]string(nil), items...)}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewNumeric builds a dimension from integer items, keeping their numeric
// values available for interval arithmetic. Time dimensions must be built
// this way.
func NewNumeric(name, letter string, values []int) (*Dimension, error) {
	d := &Dimension{
		name:    name,
		letter:  letter,
		items:   make([]string, len(values)),
		numeric: make([]float64, len(values)),
	}
	for i, v := range values {
		d.items[i] = strconv.Itoa(v)
		d.numeric[i] = float64(v)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewRange builds a numeric dimension covering [start, stop] inclusive.
func NewRange(name, letter string, start, stop int) (*Dimension, error) {
	if stop < start {
		return nil, fmt.Errorf("%w: range %d..%d for %q", ErrValidation, start, stop, name)
	}
	values := make([]int, 0, stop-start+1)
	for v := start; v <= stop; v++ {
		values = append(values, v)
	}
	return NewNumeric(name, letter, values)
}

func (d *Dimension) validate() error {
	if d.name == "" {
		return fmt.Errorf("%w: empty name", ErrValidation)
	}
	if utf8.RuneCountInString(d.letter) != 1 {
		return fmt.Errorf("%w: letter %q of dimension %q must be a single character", ErrValidation, d.letter, d.name)
	}
	if len(d.items) == 0 {
		return fmt.Errorf("%w: dimension %q has no items", ErrValidation, d.name)
	}
	seen := make(map[string]struct{}, len(d.items))
	for _, it := range d.items {
		if _, dup := seen[it]; dup {
			return fmt.Errorf("%w: duplicate item %q in dimension %q", ErrValidation, it, d.name)
		}
		seen[it] = struct{}{}
	}
	return nil
}

func (d *Dimension) Name() string   { return d.name }
func (d *Dimension) Letter() string { return d.letter }
func (d *Dimension) Len() int       { return len(d.items) }

// Items returns a copy of the item list.
func (d *Dimension) Items() []string { return append([]string(nil), d.items...) }

// Item returns the item at position i.
func (d *Dimension) Item(i int) string { return d.items[i] }

// Index returns the position of item within the dimension.
func (d *Dimension) Index(item string) (int, error) {
	for i, it := range d.items {
		if it == item {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: item %q in dimension %q", ErrNotFound, item, d.name)
}

// Contains reports whether item is one of the dimension's items.
func (d *Dimension) Contains(item string) bool {
	_, err := d.Index(item)
	return err == nil
}

// IsNumeric reports whether the dimension was built from numeric items.
func (d *Dimension) IsNumeric() bool { return d.numeric != nil }

// Numeric returns the numeric item values, in item order.
func (d *Dimension) Numeric() ([]float64, error) {
	if d.numeric == nil {
		return nil, fmt.Errorf("%w: dimension %q", ErrNotNumeric, d.name)
	}
	return append([]float64(nil), d.numeric...), nil
}

// SameItems reports whether the two dimensions carry identical item lists,
// in the same order.
func (d *Dimension) SameItems(other *Dimension) bool {
	if d.Len() != other.Len() {
		return false
	}
	for i, it := range d.items {
		if other.items[i] != it {
			return false
		}
	}
	return true
}

func (d *Dimension) String() string {
	return fmt.Sprintf("%s(%s)[%d]", d.name, d.letter, len(d.items))
}
