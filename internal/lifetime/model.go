package lifetime

import (
	"fmt"
	"sync"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// Model is the capability shared by all lifetime variants: produce the
// survival table for the model's dimension space.
type Model interface {
	// Dims returns the full dimension set, time first.
	Dims() *dims.Set
	// Grid returns the time grid the table is built on.
	Grid() *Grid
	// Table builds (or returns the cached) survival table. It returns
	// ErrConfiguration if required parameters are unset.
	Table() (*Table, error)
}

// Config carries the knobs common to all lifetime variants. The zero
// value means: time letter "t", inflow at the interval middle, a single
// integration point.
type Config struct {
	TimeLetter        string
	InflowAt          InflowAt
	PointsPerInterval int
}

// Table is the cached survival table. Entry (i, j, r) is the amount of a
// unit-rate cohort entering at time step i that is still present at step
// j ≥ i, for non-time coordinate r. Entries are pre-scaled by the entry
// interval length, so annualized inflow rates multiply in directly.
type Table struct {
	nT, rest int
	lengths  []float64
	s        []float64 // (nT, nT, rest), zero below the diagonal
}

func (t *Table) Steps() int           { return t.nT }
func (t *Table) RestSize() int        { return t.rest }
func (t *Table) Length(i int) float64 { return t.lengths[i] }

// At returns the table entry for cohort i observed at step j, coordinate
// r. For j < i the whole cohort is present and the entry is the full
// interval length.
func (t *Table) At(i, j, r int) float64 {
	if j < i {
		return t.lengths[i]
	}
	return t.s[(i*t.nT+j)*t.rest+r]
}

// core holds the dimension bookkeeping and table cache shared by all
// variants.
type core struct {
	dims  *dims.Set
	grid  *Grid
	cfg   Config
	rest  int
	table *Table
}

func newCore(ds *dims.Set, cfg Config) (core, error) {
	if cfg.TimeLetter == "" {
		cfg.TimeLetter = "t"
	}
	if cfg.PointsPerInterval == 0 {
		cfg.PointsPerInterval = 1
	}
	if cfg.PointsPerInterval < 1 || cfg.PointsPerInterval > 10 {
		return core{}, fmt.Errorf("%w: points per interval %d outside [1, 10]", ErrValidation, cfg.PointsPerInterval)
	}
	if ds.Len() == 0 || ds.Dim(0).Letter() != cfg.TimeLetter {
		return core{}, fmt.Errorf("%w: time dimension %q must be first in %v", ErrValidation, cfg.TimeLetter, ds)
	}
	grid, err := NewGrid(ds.Dim(0))
	if err != nil {
		return core{}, err
	}
	return core{dims: ds, grid: grid, cfg: cfg, rest: ds.Size() / grid.Len()}, nil
}

func (c *core) Dims() *dims.Set { return c.dims }
func (c *core) Grid() *Grid     { return c.grid }

// invalidate drops the cached table; called on every reparameterization.
func (c *core) invalidate() { c.table = nil }

// castParam broadcasts a parameter array (or scalar) to the model's full
// dimension space.
func (c *core) castParam(p *array.Array) ([]float64, error) {
	full, err := p.CastTo(c.dims)
	if err != nil {
		return nil, err
	}
	return full.Values(), nil
}

// survivalFunc evaluates the surviving fraction of a cohort of the given
// age. The flat index selects the cohort's entry step and non-time
// coordinate in the model's full dimension space.
type survivalFunc func(age float64, flat int) float64

// build fills the survival table, fanning cohorts out over goroutines.
// Sub-points within the entry interval are averaged, and each entry is
// scaled by the entry interval length.
func (c *core) build(surv survivalFunc) *Table {
	if c.table != nil {
		return c.table
	}
	nT, rest := c.grid.Len(), c.rest
	s := make([]float64, nT*nT*rest)

	var wg sync.WaitGroup
	for i := 0; i < nT; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			points := c.grid.SubPoints(i, c.cfg.InflowAt, c.cfg.PointsPerInterval)
			weight := c.grid.Length(i) / float64(len(points))
			for j := i; j < nT; j++ {
				tj := c.grid.Time(j)
				for r := 0; r < rest; r++ {
					sum := 0.0
					for _, p := range points {
						age := tj - p
						if age < 0 {
							age = 0
						}
						sum += surv(age, i*rest+r)
					}
					s[(i*nT+j)*rest+r] = sum * weight
				}
			}
		}(i)
	}
	wg.Wait()

	c.table = &Table{nT: nT, rest: rest, lengths: c.grid.lengths, s: s}
	return c.table
}
