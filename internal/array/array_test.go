package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfalab/flowdyn/internal/dims"
)

func testDims(t *testing.T) (place, year, animal *dims.Dimension) {
	t.Helper()
	var err error
	place, err = dims.New("place", "p", []string{"Earth", "Sun", "Moon", "Venus"})
	require.NoError(t, err)
	year, err = dims.NewNumeric("time", "t", []int{1990, 2000, 2010})
	require.NoError(t, err)
	animal, err = dims.New("animal", "a", []string{"cat", "mouse"})
	require.NoError(t, err)
	return place, year, animal
}

func mustSet(t *testing.T, ds ...*dims.Dimension) *dims.Set {
	t.Helper()
	s, err := dims.NewSet(ds...)
	require.NoError(t, err)
	return s
}

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestConstruction(t *testing.T) {
	place, year, _ := testDims(t)
	pt := mustSet(t, place, year)

	a, err := New(pt, seq(12))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, a.Shape())
	assert.Equal(t, 1.0, a.At(0, 0))
	assert.Equal(t, 4.0, a.At(1, 0))
	assert.Equal(t, 12.0, a.At(3, 2))

	// wrong number of values
	_, err = New(pt, seq(11))
	assert.ErrorIs(t, err, ErrShape)

	// no values -> zeros
	z := Zeros(pt)
	assert.Equal(t, 12, z.Size())
	assert.Equal(t, 0.0, z.Total())
}

func TestScalarArray(t *testing.T) {
	s := Scalar(2.5)
	assert.Equal(t, 0, s.Dims().Len())
	assert.Equal(t, 1, s.Size())

	place, year, _ := testDims(t)
	pt := mustSet(t, place, year)
	a, err := New(pt, seq(12))
	require.NoError(t, err)

	sum, err := Add(a, s)
	require.NoError(t, err)
	assert.True(t, sum.Dims().Equal(pt))
	assert.Equal(t, 3.5, sum.At(0, 0))
}

func TestUnionBroadcastAdd(t *testing.T) {
	place, year, animal := testDims(t)
	pt := mustSet(t, place, year)
	pta := mustSet(t, place, year, animal)

	numbers, err := New(pt, seq(12))
	require.NoError(t, err)
	spaceAnimals, err := New(pta, seq(24))
	require.NoError(t, err)

	sum, err := Add(numbers, spaceAnimals)
	require.NoError(t, err)
	assert.True(t, sum.Dims().Equal(pta), "result dims are the union")

	// numbers is repeated along the animal axis
	for p := 0; p < 4; p++ {
		for y := 0; y < 3; y++ {
			for an := 0; an < 2; an++ {
				want := numbers.At(p, y) + spaceAnimals.At(p, y, an)
				assert.Equal(t, want, sum.At(p, y, an))
			}
		}
	}

	// commutativity: identical dims, identical values
	flipped, err := Add(spaceAnimals, numbers)
	require.NoError(t, err)
	assert.True(t, sum.Dims().Equal(flipped.Dims()))
	assert.Equal(t, sum.Values(), flipped.Values())
}

func TestMulDiv(t *testing.T) {
	place, year, animal := testDims(t)
	pt := mustSet(t, place, year)
	pta := mustSet(t, place, year, animal)

	numbers, err := New(pt, seq(12))
	require.NoError(t, err)
	spaceAnimals, err := New(pta, seq(24))
	require.NoError(t, err)

	product, err := Mul(numbers, spaceAnimals)
	require.NoError(t, err)
	assert.True(t, product.Dims().Equal(pta))
	assert.Equal(t, numbers.At(1, 2)*spaceAnimals.At(1, 2, 1), product.At(1, 2, 1))

	quotient, err := Div(spaceAnimals, numbers)
	require.NoError(t, err)
	assert.Equal(t, spaceAnimals.At(2, 0, 0)/numbers.At(2, 0), quotient.At(2, 0, 0))
}

func TestDivisionByZeroIsFloatSemantics(t *testing.T) {
	place, _, _ := testDims(t)
	p := mustSet(t, place)

	a, err := New(p, []float64{1, -1, 0, 2})
	require.NoError(t, err)
	b, err := New(p, []float64{0, 0, 0, 1})
	require.NoError(t, err)

	q, err := Div(a, b)
	require.NoError(t, err)
	assert.True(t, math.IsInf(q.At(0), 1))
	assert.True(t, math.IsInf(q.At(1), -1))
	assert.True(t, math.IsNaN(q.At(2)))
	assert.Equal(t, 2.0, q.At(3))
}

func TestConflictingItemsRejected(t *testing.T) {
	year1, err := dims.NewNumeric("time", "t", []int{1990, 2000})
	require.NoError(t, err)
	year2, err := dims.NewNumeric("time", "t", []int{2000, 2010})
	require.NoError(t, err)

	a := Zeros(mustSet(t, year1))
	b := Zeros(mustSet(t, year2))

	_, err = Add(a, b)
	assert.ErrorIs(t, err, dims.ErrConflict)
}

func TestSumOverAndSumTo(t *testing.T) {
	place, year, animal := testDims(t)
	pta := mustSet(t, place, year, animal)
	a, err := New(pta, seq(24))
	require.NoError(t, err)

	summed, err := a.SumOver("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "t"}, summed.Dims().Letters())
	assert.Equal(t, a.At(0, 0, 0)+a.At(0, 0, 1), summed.At(0, 0))

	byTime, err := a.SumTo("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, byTime.Dims().Letters())
	assert.InDelta(t, a.Total(), byTime.Total(), 1e-12)

	_, err = a.SumOver("s")
	assert.ErrorIs(t, err, dims.ErrNotFound)
	_, err = a.SumTo("s")
	assert.ErrorIs(t, err, dims.ErrNotFound)
}

func TestCastTo(t *testing.T) {
	place, year, animal := testDims(t)
	pt := mustSet(t, place, year)
	pta := mustSet(t, place, year, animal)

	a, err := New(pt, seq(12))
	require.NoError(t, err)

	cast, err := a.CastTo(pta)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, cast.Shape())
	assert.InDelta(t, 2*a.Total(), cast.Total(), 1e-12)
	assert.Equal(t, a.At(2, 1), cast.At(2, 1, 0))
	assert.Equal(t, a.At(2, 1), cast.At(2, 1, 1))

	// cast to own dims is the identity
	same, err := a.CastTo(pt)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), same.Values())

	// target missing one of a's dims
	ta := mustSet(t, year, animal)
	_, err = a.CastTo(ta)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSharesOver(t *testing.T) {
	place, year, _ := testDims(t)
	pt := mustSet(t, place, year)

	a, err := New(pt, seq(12))
	require.NoError(t, err)

	shares, err := a.SharesOver("p")
	require.NoError(t, err)
	assert.True(t, shares.Dims().Equal(pt))

	totals, err := shares.SumOver("p")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, totals.At(i), 1e-12)
	}
}

func TestSharesOverZeroSlice(t *testing.T) {
	place, year, _ := testDims(t)
	pt := mustSet(t, place, year)

	a := Zeros(pt)
	// leave the 1990 column all zero, fill the rest
	for p := 0; p < 4; p++ {
		a.SetAt(float64(p+1), p, 1)
		a.SetAt(float64(p+1), p, 2)
	}

	shares, err := a.SharesOver("p")
	require.NoError(t, err)

	for p := 0; p < 4; p++ {
		assert.Equal(t, 0.0, shares.At(p, 0), "zero slice normalizes to zero")
		assert.False(t, math.IsNaN(shares.At(p, 1)))
	}
	totals, err := shares.SumOver("p")
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.At(0))
	assert.InDelta(t, 1.0, totals.At(1), 1e-12)
}

func TestSlice(t *testing.T) {
	place, year, animal := testDims(t)
	pta := mustSet(t, place, year, animal)
	a, err := New(pta, seq(24))
	require.NoError(t, err)

	moonCats, err := a.Slice("Moon")
	require.NoError(t, err)
	moonCats, err = moonCats.Slice("cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, moonCats.Dims().Letters())
	for y := 0; y < 3; y++ {
		assert.Equal(t, a.At(2, y, 0), moonCats.At(y))
	}

	// item that exists nowhere
	_, err = a.Slice("dog")
	assert.ErrorIs(t, err, dims.ErrNotFound)

	// slicing returns a copy, not a view
	slice, err := a.SliceDim("t", "1990")
	require.NoError(t, err)
	slice.Fill(123)
	assert.NotEqual(t, 123.0, a.At(0, 0, 0))
}

func TestSliceAmbiguity(t *testing.T) {
	steelA, err := dims.New("material", "m", []string{"steel", "wood"})
	require.NoError(t, err)
	steelB, err := dims.New("commodity", "c", []string{"steel", "cement"})
	require.NoError(t, err)
	a := Zeros(mustSet(t, steelA, steelB))

	_, err = a.Slice("steel")
	assert.ErrorIs(t, err, ErrAmbiguous)

	got, err := a.SliceDim("m", "steel")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got.Dims().Letters())
}

func TestSetFrom(t *testing.T) {
	place, year, animal := testDims(t)
	pt := mustSet(t, place, year)
	pta := mustSet(t, place, year, animal)

	src, err := New(pta, seq(24))
	require.NoError(t, err)

	// extra dims of the source are summed away
	dst := Zeros(pt)
	require.NoError(t, dst.SetFrom(src))
	assert.Equal(t, src.At(1, 1, 0)+src.At(1, 1, 1), dst.At(1, 1))

	// missing dims of the source are broadcast
	wide := Zeros(pta)
	narrow, err := New(pt, seq(12))
	require.NoError(t, err)
	require.NoError(t, wide.SetFrom(narrow))
	assert.Equal(t, narrow.At(3, 2), wide.At(3, 2, 1))
}

func TestTableRows(t *testing.T) {
	place, year, _ := testDims(t)
	pt := mustSet(t, place, year)
	a, err := New(pt, seq(12))
	require.NoError(t, err)

	rows := a.Table()
	require.Len(t, rows, 12)
	assert.Equal(t, []string{"place", "time"}, a.Header())
	assert.Equal(t, []string{"Earth", "1990"}, rows[0].Items)
	assert.Equal(t, 1.0, rows[0].Value)
	assert.Equal(t, []string{"Venus", "2010"}, rows[11].Items)
	assert.Equal(t, 12.0, rows[11].Value)
}
