package dims

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDim(t *testing.T, name, letter string, items []string) *Dimension {
	t.Helper()
	d, err := New(name, letter, items)
	require.NoError(t, err)
	return d
}

func TestDimensionValidation(t *testing.T) {
	tests := []struct {
		name   string
		dim    string
		letter string
		items  []string
		ok     bool
	}{
		{"valid", "region", "r", []string{"EU", "US", "MEX"}, true},
		{"single item", "place", "p", []string{"World"}, true},
		{"empty name", "", "r", []string{"EU"}, false},
		{"multi-char letter", "region", "re", []string{"EU"}, false},
		{"empty letter", "region", "", []string{"EU"}, false},
		{"no items", "region", "r", nil, false},
		{"duplicate items", "region", "r", []string{"EU", "EU"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dim, tt.letter, tt.items)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestDimensionIndex(t *testing.T) {
	d := mustDim(t, "region", "r", []string{"EU", "US", "MEX"})

	i, err := d.Index("US")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = d.Index("CHN")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, d.Contains("MEX"))
	assert.False(t, d.Contains("JPN"))
}

func TestNumericDimension(t *testing.T) {
	d, err := NewNumeric("time", "t", []int{2000, 2005, 2010})
	require.NoError(t, err)

	assert.Equal(t, []string{"2000", "2005", "2010"}, d.Items())
	assert.True(t, d.IsNumeric())

	values, err := d.Numeric()
	require.NoError(t, err)
	assert.Equal(t, []float64{2000, 2005, 2010}, values)

	labels := mustDim(t, "region", "r", []string{"EU"})
	_, err = labels.Numeric()
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestNewRange(t *testing.T) {
	d, err := NewRange("time", "t", 2000, 2003)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, "2003", d.Item(3))

	_, err = NewRange("time", "t", 2003, 2000)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetLookup(t *testing.T) {
	time := mustDim(t, "time", "t", []string{"1990", "2000", "2010"})
	place := mustDim(t, "place", "p", []string{"World"})
	material := mustDim(t, "material", "m", []string{"steel", "aluminum"})

	s, err := NewSet(time, place, material)
	require.NoError(t, err)

	for key, want := range map[string]int{"t": 0, "p": 1, "m": 2, "time": 0, "place": 1, "material": 2} {
		i, err := s.Index(key)
		require.NoError(t, err)
		assert.Equal(t, want, i, "key %q", key)
	}

	_, err = s.Index("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := s.Get("material")
	require.NoError(t, err)
	assert.Equal(t, "m", d.Letter())

	assert.Equal(t, []int{3, 1, 2}, s.Shape())
	assert.Equal(t, 6, s.Size())
}

func TestSetDuplicateLetter(t *testing.T) {
	a := mustDim(t, "time", "t", []string{"1990", "2000"})
	b := mustDim(t, "another time", "t", []string{"2020", "2030"})

	_, err := NewSet(a, b)
	assert.Error(t, err)
}

func TestSubsetKeepsCanonicalOrder(t *testing.T) {
	time := mustDim(t, "time", "t", []string{"1990"})
	place := mustDim(t, "place", "p", []string{"World"})
	material := mustDim(t, "material", "m", []string{"steel"})

	s, err := NewSet(time, place, material)
	require.NoError(t, err)

	// requested out of order, returned in set order
	sub, err := s.Subset("m", "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "m"}, sub.Letters())

	sub, err = s.Subset("material", "time")
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "m"}, sub.Letters())

	_, err = s.Subset("s", "p")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetOperations(t *testing.T) {
	time := mustDim(t, "time", "t", []string{"1990"})
	place := mustDim(t, "place", "p", []string{"World"})
	material := mustDim(t, "material", "m", []string{"steel"})
	product := mustDim(t, "product", "r", []string{"car", "bike"})

	s1, err := NewSet(time, place, material)
	require.NoError(t, err)
	s2, err := NewSet(place, material, product)
	require.NoError(t, err)

	inter, err := s1.Intersect(s2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "m"}, inter.Letters())

	diff := s1.Difference(s2)
	assert.Equal(t, []string{"t"}, diff.Letters())

	union, err := s1.Union(s2)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "p", "m", "r"}, union.Letters())

	// union is symmetric in dims and order
	flipped, err := s2.Union(s1)
	require.NoError(t, err)
	assert.True(t, union.Equal(flipped))

	without, err := s1.Without("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "m"}, without.Letters())
}

func TestUnionConflict(t *testing.T) {
	time := mustDim(t, "time", "t", []string{"1990", "2000"})
	otherTime := mustDim(t, "time", "t", []string{"2000", "2010"})
	place := mustDim(t, "place", "p", []string{"World"})

	s1, err := NewSet(time, place)
	require.NoError(t, err)
	s2, err := NewSet(otherTime)
	require.NoError(t, err)

	_, err = s1.Union(s2)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s1.Intersect(s2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUnionDisjointDeterministic(t *testing.T) {
	a := mustDim(t, "a-dim", "a", []string{"x"})
	b := mustDim(t, "b-dim", "b", []string{"y"})

	s1, err := NewSet(a)
	require.NoError(t, err)
	s2, err := NewSet(b)
	require.NoError(t, err)

	u1, err := s1.Union(s2)
	require.NoError(t, err)
	u2, err := s2.Union(s1)
	require.NoError(t, err)
	assert.True(t, u1.Equal(u2))
}

func TestContainsAllAndEqual(t *testing.T) {
	time := mustDim(t, "time", "t", []string{"1990"})
	place := mustDim(t, "place", "p", []string{"World"})

	s, err := NewSet(time, place)
	require.NoError(t, err)
	sub, err := s.Subset("p")
	require.NoError(t, err)

	assert.True(t, s.ContainsAll(sub))
	assert.False(t, sub.ContainsAll(s))
	assert.True(t, s.ContainsAll(Empty()))
	assert.False(t, s.Equal(sub))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrValidation, ErrNotFound, ErrConflict, ErrNotNumeric}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}
