// Package array implements labeled multi-dimensional arrays and the
// dimension-aware algebra over them.
//
// An [Array] pairs a dense float64 buffer with the [dims.Set] it is indexed
// over; the buffer is laid out row-major in the set's canonical axis order.
// Binary operations accept operands over different dimension subsets: the
// result is defined over the union of both sets, and each operand is
// broadcast along the axes it lacks. The union step is also where shared
// letters with mismatched item lists are rejected, so misaligned axes
// surface as errors instead of silently wrong numbers.
//
// Slicing by item returns a fresh array over a reduced set; no two arrays
// ever share a buffer.
package array
