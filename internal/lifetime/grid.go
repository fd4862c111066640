package lifetime

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
)

// InflowAt places a cohort's inflow within its time interval.
type InflowAt int

const (
	Middle InflowAt = iota
	Start
	End
)

// ParseInflowAt maps the configuration strings "start", "middle" and
// "end".
func ParseInflowAt(s string) (InflowAt, error) {
	switch s {
	case "start":
		return Start, nil
	case "middle", "":
		return Middle, nil
	case "end":
		return End, nil
	}
	return Middle, fmt.Errorf("%w: inflow_at %q (want start, middle or end)", ErrValidation, s)
}

func (a InflowAt) String() string {
	switch a {
	case Start:
		return "start"
	case End:
		return "end"
	}
	return "middle"
}

// Grid derives interval structure from a possibly uneven time dimension.
// Interval bounds are the midpoints between consecutive time items; the
// first and last interval mirror their nearest interior neighbor.
type Grid struct {
	times   []float64
	bounds  []float64 // len(times)+1
	lengths []float64
}

// NewGrid builds a grid from a numeric, strictly ascending time dimension.
func NewGrid(d *dims.Dimension) (*Grid, error) {
	times, err := d.Numeric()
	if err != nil {
		return nil, fmt.Errorf("%w: time dimension %q: %v", ErrValidation, d.Name(), err)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: time items of %q not strictly ascending", ErrValidation, d.Name())
		}
	}
	n := len(times)
	b := make([]float64, n+1)
	if n == 1 {
		// degenerate single-step grid: unit interval around the item
		b[0], b[1] = times[0]-0.5, times[0]+0.5
	} else {
		for i := 1; i < n; i++ {
			b[i] = (times[i-1] + times[i]) / 2
		}
		b[0] = times[0] - (b[1] - times[0])
		b[n] = times[n-1] + (times[n-1] - b[n-1])
	}
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = b[i+1] - b[i]
	}
	return &Grid{times: times, bounds: b, lengths: lengths}, nil
}

func (g *Grid) Len() int             { return len(g.times) }
func (g *Grid) Time(i int) float64   { return g.times[i] }
func (g *Grid) Length(i int) float64 { return g.lengths[i] }

// Lengths returns a copy of the interval lengths.
func (g *Grid) Lengths() []float64 { return append([]float64(nil), g.lengths...) }

// SubPoints returns the inflow placement points within interval i. With a
// single point the at convention applies; with more, midpoint-rule
// quadrature points span the interval.
func (g *Grid) SubPoints(i int, at InflowAt, points int) []float64 {
	lo, length := g.bounds[i], g.lengths[i]
	if points <= 1 {
		switch at {
		case Start:
			return []float64{lo}
		case End:
			return []float64{lo + length}
		default:
			return []float64{lo + length/2}
		}
	}
	out := make([]float64, points)
	for k := range out {
		out[k] = lo + (float64(k)+0.5)*length/float64(points)
	}
	return out
}
