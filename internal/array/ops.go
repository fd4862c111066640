package array

import (
	"fmt"
	"math"

	"github.com/mfalab/flowdyn/internal/dims"
)

// broadcastStrides returns, per axis of target, the stride of the operand's
// buffer along that axis, or 0 where the operand lacks the dimension. The
// operand's own axis order is irrelevant; strides absorb any reordering.
func broadcastStrides(operand, target *dims.Set) []int {
	opStrides := strides(operand.Shape())
	out := make([]int, target.Len())
	for i := 0; i < target.Len(); i++ {
		letter := target.Dim(i).Letter()
		if j, err := operand.Index(letter); err == nil {
			out[i] = opStrides[j]
		}
	}
	return out
}

// odometer walks every coordinate of shape, maintaining flat offsets into
// any number of stride spaces.
type odometer struct {
	shape   []int
	coord   []int
	strides [][]int
	offsets []int
}

func newOdometer(shape []int, strideSets ...[]int) *odometer {
	return &odometer{
		shape:   shape,
		coord:   make([]int, len(shape)),
		strides: strideSets,
		offsets: make([]int, len(strideSets)),
	}
}

func (o *odometer) next() {
	for k := len(o.shape) - 1; k >= 0; k-- {
		o.coord[k]++
		for s := range o.strides {
			o.offsets[s] += o.strides[s][k]
		}
		if o.coord[k] < o.shape[k] {
			return
		}
		o.coord[k] = 0
		for s := range o.strides {
			o.offsets[s] -= o.strides[s][k] * o.shape[k]
		}
	}
}

// apply2 evaluates f elementwise over the union of both operand dimension
// sets, broadcasting each operand along its missing axes.
func apply2(a, b *Array, f func(x, y float64) float64) (*Array, error) {
	union, err := a.dims.Union(b.dims)
	if err != nil {
		return nil, err
	}
	out := Zeros(union)
	od := newOdometer(union.Shape(), broadcastStrides(a.dims, union), broadcastStrides(b.dims, union))
	for i := range out.data {
		out.data[i] = f(a.data[od.offsets[0]], b.data[od.offsets[1]])
		od.next()
	}
	return out, nil
}

// Add returns a + b over the union of both dimension sets.
func Add(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b over the union of both dimension sets.
func Sub(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a * b over the union of both dimension sets.
func Mul(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a / b over the union of both dimension sets. Division by
// zero follows float64 semantics (Inf or NaN).
func Div(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x / y })
}

// Minimum returns the elementwise minimum over the union of both sets.
func Minimum(a, b *Array) (*Array, error) {
	return apply2(a, b, math.Min)
}

// Maximum returns the elementwise maximum over the union of both sets.
func Maximum(a, b *Array) (*Array, error) {
	return apply2(a, b, math.Max)
}

// AddScalar returns a + s.
func (a *Array) AddScalar(s float64) *Array {
	out := a.Clone()
	for i := range out.data {
		out.data[i] += s
	}
	return out
}

// SubScalar returns a - s.
func (a *Array) SubScalar(s float64) *Array {
	return a.AddScalar(-s)
}

// MulScalar returns a * s.
func (a *Array) MulScalar(s float64) *Array {
	out := a.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// DivScalar returns a / s, with float64 division-by-zero semantics.
func (a *Array) DivScalar(s float64) *Array {
	out := a.Clone()
	for i := range out.data {
		out.data[i] /= s
	}
	return out
}

// SumOver reduces the array by summation across the named dimensions.
func (a *Array) SumOver(keys ...string) (*Array, error) {
	reduced, err := a.dims.Without(keys...)
	if err != nil {
		return nil, err
	}
	out := Zeros(reduced)
	od := newOdometer(a.Shape(), broadcastStrides(reduced, a.dims))
	for _, v := range a.data {
		out.data[od.offsets[0]] += v
		od.next()
	}
	return out, nil
}

// SumTo reduces the array by summation down to the named dimensions, which
// must all be present.
func (a *Array) SumTo(keys ...string) (*Array, error) {
	keep, err := a.dims.Subset(keys...)
	if err != nil {
		return nil, err
	}
	drop := a.dims.Difference(keep)
	return a.SumOver(drop.Letters()...)
}

// CastTo broadcasts the array up to target by repetition along the axes it
// lacks. The array's dimensions must be a subset of target.
func (a *Array) CastTo(target *dims.Set) (*Array, error) {
	if !target.ContainsAll(a.dims) {
		return nil, fmt.Errorf("%w: cannot cast %v to %v", ErrDimensionMismatch, a.dims, target)
	}
	out := Zeros(target)
	od := newOdometer(target.Shape(), broadcastStrides(a.dims, target))
	for i := range out.data {
		out.data[i] = a.data[od.offsets[0]]
		od.next()
	}
	return out, nil
}

// SharesOver normalizes values along the named dimensions so each slice
// sums to 1 per combination of the remaining dimensions. Slices with a
// zero total yield 0, not NaN, so empty categories do not poison
// downstream balances.
func (a *Array) SharesOver(keys ...string) (*Array, error) {
	totals, err := a.SumOver(keys...)
	if err != nil {
		return nil, err
	}
	return apply2(a, totals, func(x, total float64) float64 {
		if total == 0 {
			return 0
		}
		return x / total
	})
}

// SetFrom assigns b's values into the receiver, summing b over dimensions
// the receiver lacks and broadcasting along dimensions b lacks. This is
// the write counterpart of the union algebra: the receiver's shape never
// changes.
func (a *Array) SetFrom(b *Array) error {
	extra := b.dims.Difference(a.dims)
	reduced := b
	if extra.Len() > 0 {
		var err error
		reduced, err = b.SumOver(extra.Letters()...)
		if err != nil {
			return err
		}
	}
	cast, err := reduced.CastTo(a.dims)
	if err != nil {
		return err
	}
	copy(a.data, cast.data)
	return nil
}
