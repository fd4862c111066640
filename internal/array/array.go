package array

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
)

// Array is a dense float64 array labeled by a dimension set. The buffer is
// row-major in the set's canonical axis order, and is owned exclusively by
// the array.
type Array struct {
	dims *dims.Set
	data []float64
	name string
}

// Zeros builds a zero-filled array over the given dimensions.
func Zeros(ds *dims.Set) *Array {
	return &Array{dims: ds, data: make([]float64, ds.Size())}
}

// New builds an array from explicit values; len(values) must equal the
// size of the dimension set.
func New(ds *dims.Set, values []float64) (*Array, error) {
	if len(values) != ds.Size() {
		return nil, fmt.Errorf("%w: got %d values for shape %v", ErrShape, len(values), ds.Shape())
	}
	return &Array{dims: ds, data: append([]float64(nil), values...)}, nil
}

// Scalar wraps a single value as a zero-dimensional array, broadcastable
// against anything.
func Scalar(v float64) *Array {
	return &Array{dims: dims.Empty(), data: []float64{v}}
}

// WithName sets the array name and returns the array.
func (a *Array) WithName(name string) *Array {
	a.name = name
	return a
}

func (a *Array) Name() string    { return a.name }
func (a *Array) Dims() *dims.Set { return a.dims }
func (a *Array) Shape() []int    { return a.dims.Shape() }
func (a *Array) Size() int       { return len(a.data) }

// Values exposes the backing buffer. Mutating it is allowed and keeps the
// shape intact; the buffer must never be shared with another array.
func (a *Array) Values() []float64 { return a.data }

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{dims: a.dims, data: append([]float64(nil), a.data...), name: a.name}
}

// Fill sets every element to v.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// strides returns the row-major stride per axis.
func strides(shape []int) []int {
	out := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = acc
		acc *= shape[i]
	}
	return out
}

// flatIndex converts a full coordinate to a buffer offset.
func (a *Array) flatIndex(coord []int) int {
	st := strides(a.Shape())
	flat := 0
	for i, c := range coord {
		flat += c * st[i]
	}
	return flat
}

// At returns the value at the given coordinate (one index per axis).
func (a *Array) At(coord ...int) float64 {
	return a.data[a.flatIndex(coord)]
}

// SetAt sets the value at the given coordinate.
func (a *Array) SetAt(v float64, coord ...int) {
	a.data[a.flatIndex(coord)] = v
}

// Total returns the sum of all elements.
func (a *Array) Total() float64 {
	sum := 0.0
	for _, v := range a.data {
		sum += v
	}
	return sum
}
