package stock

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
)

// dsmBase is shared by the dynamic stock model variants: a stock plus a
// lifetime model over the same dimensions, with cohort-resolved results.
type dsmBase struct {
	base
	model lifetime.Model

	// cohort matrices, shape (time, cohort, rest), filled by Compute
	stockByCohort   []float64
	outflowByCohort []float64
}

func newDSMBase(ds *dims.Set, model lifetime.Model, cfg Config) (dsmBase, error) {
	b, err := newBase(ds, cfg)
	if err != nil {
		return dsmBase{}, err
	}
	if model == nil {
		return dsmBase{}, fmt.Errorf("%w: dynamic stock model needs a lifetime model", ErrConfiguration)
	}
	if !model.Dims().Equal(ds) {
		return dsmBase{}, fmt.Errorf("%w: lifetime model dims %v vs stock dims %v",
			ErrDimensionMismatch, model.Dims(), ds)
	}
	return dsmBase{base: b, model: model}, nil
}

// LifetimeModel returns the attached survival model.
func (d *dsmBase) LifetimeModel() lifetime.Model { return d.model }

// StockByCohort returns the stock split by entry cohort, flat over
// (time, cohort, non-time coordinate). Nil before Compute.
func (d *dsmBase) StockByCohort() []float64 { return d.stockByCohort }

// OutflowByCohort returns the outflow split by entry cohort, flat over
// (time, cohort, non-time coordinate). Nil before Compute.
func (d *dsmBase) OutflowByCohort() []float64 { return d.outflowByCohort }

// fillStockFromInflow builds the cohort-resolved stock from annualized
// inflows: stock[j] = sum over cohorts i ≤ j of inflow[i] * S[i,j].
func (d *dsmBase) fillStockFromInflow(table *lifetime.Table) {
	nT, rest := table.Steps(), table.RestSize()
	in, sv := d.inflow.Values(), d.stock.Values()
	d.stockByCohort = make([]float64, nT*nT*rest)

	for j := 0; j < nT; j++ {
		for r := 0; r < rest; r++ {
			total := 0.0
			for i := 0; i <= j; i++ {
				v := in[i*rest+r] * table.At(i, j, r)
				d.stockByCohort[(j*nT+i)*rest+r] = v
				total += v
			}
			sv[j*rest+r] = total
		}
	}
}

// fillOutflowFromInflow builds the cohort-resolved outflow: what each
// cohort loses between consecutive observations, annualized by the
// observation interval length.
func (d *dsmBase) fillOutflowFromInflow(table *lifetime.Table) {
	nT, rest := table.Steps(), table.RestSize()
	in, out := d.inflow.Values(), d.outflow.Values()
	d.outflowByCohort = make([]float64, nT*nT*rest)

	for j := 0; j < nT; j++ {
		dt := table.Length(j)
		for r := 0; r < rest; r++ {
			total := 0.0
			for i := 0; i <= j; i++ {
				// At(i, j-1, r) is the full interval length when j == i
				left := in[i*rest+r] * (table.At(i, j-1, r) - table.At(i, j, r))
				d.outflowByCohort[(j*nT+i)*rest+r] = left / dt
				total += left
			}
			out[j*rest+r] = total / dt
		}
	}
}

// InflowDriven computes outflow and stock from a known inflow and the
// lifetime model.
type InflowDriven struct {
	dsmBase
}

// NewInflowDriven builds an inflow-driven dynamic stock model.
func NewInflowDriven(ds *dims.Set, model lifetime.Model, cfg Config) (*InflowDriven, error) {
	d, err := newDSMBase(ds, model, cfg)
	if err != nil {
		return nil, err
	}
	return &InflowDriven{dsmBase: d}, nil
}

func (s *InflowDriven) Compute() error {
	table, err := s.model.Table()
	if err != nil {
		return err
	}
	s.fillStockFromInflow(table)
	s.fillOutflowFromInflow(table)
	return nil
}
