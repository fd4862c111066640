package stock

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
)

// Flexible runs stock-driven when a stock trajectory is present and
// inflow-driven otherwise. Presence means any nonzero value; a model
// where both are all-zero has nothing to compute from.
type Flexible struct {
	dsmBase
}

// NewFlexible builds a dynamic stock model that picks its direction at
// compute time.
func NewFlexible(ds *dims.Set, model lifetime.Model, cfg Config) (*Flexible, error) {
	d, err := newDSMBase(ds, model, cfg)
	if err != nil {
		return nil, err
	}
	return &Flexible{dsmBase: d}, nil
}

func (s *Flexible) Compute() error {
	table, err := s.model.Table()
	if err != nil {
		return err
	}

	switch {
	case anyNonzero(s.stock.Values()):
		nT, rest := table.Steps(), table.RestSize()
		in, sv := s.inflow.Values(), s.stock.Values()
		for r := 0; r < rest; r++ {
			for j := 0; j < nT; j++ {
				known := 0.0
				for i := 0; i < j; i++ {
					known += in[i*rest+r] * table.At(i, j, r)
				}
				in[j*rest+r] = (sv[j*rest+r] - known) / table.At(j, j, r)
			}
		}
	case anyNonzero(s.inflow.Values()):
		// inflow already holds the driver
	default:
		return fmt.Errorf("%w: flexible stock needs a stock or inflow to compute from", ErrConfiguration)
	}

	s.fillStockFromInflow(table)
	s.fillOutflowFromInflow(table)
	return nil
}

func anyNonzero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}
