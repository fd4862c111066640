package array

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
)

// Slice selects a single item, searching all dimensions for it. The
// matched dimension is collapsed and dropped from the result. An item
// present in more than one dimension is ambiguous and must be selected
// with SliceDim instead.
func (a *Array) Slice(item string) (*Array, error) {
	found := ""
	for i := 0; i < a.dims.Len(); i++ {
		d := a.dims.Dim(i)
		if !d.Contains(item) {
			continue
		}
		if found != "" {
			return nil, fmt.Errorf("%w: item %q is in dimensions %q and %q",
				ErrAmbiguous, item, found, d.Letter())
		}
		found = d.Letter()
	}
	if found == "" {
		return nil, fmt.Errorf("%w: item %q in dimensions %v", dims.ErrNotFound, item, a.dims)
	}
	return a.SliceDim(found, item)
}

// SliceDim selects a single item along the dimension identified by letter
// or name, returning a new array with that dimension removed. The result
// owns its values; it is a copy, not a view.
func (a *Array) SliceDim(key, item string) (*Array, error) {
	axis, err := a.dims.Index(key)
	if err != nil {
		return nil, err
	}
	d := a.dims.Dim(axis)
	pos, err := d.Index(item)
	if err != nil {
		return nil, err
	}

	reduced, err := a.dims.Without(d.Letter())
	if err != nil {
		return nil, err
	}
	out := Zeros(reduced)

	st := strides(a.Shape())
	base := pos * st[axis]
	// Walk the reduced coordinates; for each, read the source at the fixed
	// item position along the sliced axis.
	src := newOdometer(reduced.Shape(), reducedToSourceStrides(a, axis))
	for i := range out.data {
		out.data[i] = a.data[base+src.offsets[0]]
		src.next()
	}
	return out, nil
}

// reducedToSourceStrides maps the axes of the array-without-axis back onto
// the source buffer.
func reducedToSourceStrides(a *Array, dropped int) []int {
	full := strides(a.Shape())
	out := make([]int, 0, len(full)-1)
	for i, s := range full {
		if i != dropped {
			out = append(out, s)
		}
	}
	return out
}
