package stock

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
)

// DefaultTolerance is the absolute tolerance used by balance checks when
// the caller has no better number.
const DefaultTolerance = 1e-9

// Stock is the capability shared by all stock variants: compute the
// missing quantities from the provided ones, and account for the result.
type Stock interface {
	Name() string
	Dims() *dims.Set
	Inflow() *array.Array
	Outflow() *array.Array
	Stock() *array.Array
	// Process returns the name of the owning process, or "" if detached.
	// It is a lookup handle, not a reference; the process owns nothing
	// here and nothing here owns the process.
	Process() string
	StockChange() *array.Array
	IntervalLengths() *array.Array
	Compute() error
	CheckBalance(tolerance float64) []Violation
}

// Config carries the optional pieces common to all stock variants. Any
// arrays supplied must share the stock's dimension set exactly.
type Config struct {
	Name       string
	TimeLetter string // defaults to "t"
	Process    string
	Inflow     *array.Array
	Outflow    *array.Array
	Stock      *array.Array
}

type base struct {
	name    string
	dims    *dims.Set
	process string
	grid    *lifetime.Grid
	inflow  *array.Array
	outflow *array.Array
	stock   *array.Array
}

func newBase(ds *dims.Set, cfg Config) (base, error) {
	timeLetter := cfg.TimeLetter
	if timeLetter == "" {
		timeLetter = "t"
	}
	if ds.Len() == 0 || ds.Dim(0).Letter() != timeLetter {
		return base{}, fmt.Errorf("%w: time dimension %q must be the first axis of %v", ErrValidation, timeLetter, ds)
	}
	grid, err := lifetime.NewGrid(ds.Dim(0))
	if err != nil {
		return base{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	name := cfg.Name
	if name == "" {
		name = "unnamed"
	}

	b := base{name: name, dims: ds, process: cfg.Process, grid: grid}
	if b.inflow, err = takeOrZero(cfg.Inflow, ds, name+"_inflow"); err != nil {
		return base{}, err
	}
	if b.outflow, err = takeOrZero(cfg.Outflow, ds, name+"_outflow"); err != nil {
		return base{}, err
	}
	if b.stock, err = takeOrZero(cfg.Stock, ds, name+"_stock"); err != nil {
		return base{}, err
	}
	return b, nil
}

func takeOrZero(a *array.Array, ds *dims.Set, name string) (*array.Array, error) {
	if a == nil {
		return array.Zeros(ds).WithName(name), nil
	}
	if !a.Dims().Equal(ds) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch, a.Dims(), ds)
	}
	return a.Clone(), nil
}

func (b *base) Name() string          { return b.name }
func (b *base) Dims() *dims.Set       { return b.dims }
func (b *base) Process() string       { return b.process }
func (b *base) Inflow() *array.Array  { return b.inflow }
func (b *base) Outflow() *array.Array { return b.outflow }
func (b *base) Stock() *array.Array   { return b.stock }

// restSize is the number of non-time coordinate combinations.
func (b *base) restSize() int { return b.dims.Size() / b.grid.Len() }

// IntervalLengths returns the time interval lengths as a 1-d array over
// the time dimension.
func (b *base) IntervalLengths() *array.Array {
	td, _ := b.dims.Subset(b.dims.Dim(0).Letter())
	out := array.Zeros(td)
	copy(out.Values(), b.grid.Lengths())
	return out
}

// NetInflow returns inflow minus outflow.
func (b *base) NetInflow() (*array.Array, error) {
	return array.Sub(b.inflow, b.outflow)
}

// StockChange returns the step-to-step difference of the stock, with the
// level before the first step taken as zero.
func (b *base) StockChange() *array.Array {
	nT, rest := b.grid.Len(), b.restSize()
	out := array.Zeros(b.dims).WithName(b.name + "_stock_change")
	sv, ov := b.stock.Values(), out.Values()
	for j := 0; j < nT; j++ {
		for r := 0; r < rest; r++ {
			prev := 0.0
			if j > 0 {
				prev = sv[(j-1)*rest+r]
			}
			ov[j*rest+r] = sv[j*rest+r] - prev
		}
	}
	return out
}

// Violation is one (time, coordinate) combination where the stock balance
// does not hold.
type Violation struct {
	TimeIndex int
	TimeItem  string
	Coord     []string
	Residual  float64
}

// CheckBalance verifies stock[t] - stock[t-1] == (inflow[t] - outflow[t])
// * dt[t] for every coordinate and time step, within the given absolute
// tolerance. It returns the violating combinations rather than failing on
// the first, to keep model debugging sane.
func (b *base) CheckBalance(tolerance float64) []Violation {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	nT, rest := b.grid.Len(), b.restSize()
	in, out, sv := b.inflow.Values(), b.outflow.Values(), b.stock.Values()

	var violations []Violation
	for j := 0; j < nT; j++ {
		dt := b.grid.Length(j)
		for r := 0; r < rest; r++ {
			prev := 0.0
			if j > 0 {
				prev = sv[(j-1)*rest+r]
			}
			idx := j*rest + r
			residual := sv[idx] - prev - (in[idx]-out[idx])*dt
			if residual > tolerance || residual < -tolerance {
				violations = append(violations, Violation{
					TimeIndex: j,
					TimeItem:  b.dims.Dim(0).Item(j),
					Coord:     b.coordItems(r),
					Residual:  residual,
				})
			}
		}
	}
	return violations
}

// coordItems decomposes a flat non-time index into the items of the
// remaining dimensions.
func (b *base) coordItems(r int) []string {
	n := b.dims.Len() - 1
	items := make([]string, n)
	for k := n; k >= 1; k-- {
		d := b.dims.Dim(k)
		items[k-1] = d.Item(r % d.Len())
		r /= d.Len()
	}
	return items
}
