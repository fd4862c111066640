package stock

import (
	"github.com/mfalab/flowdyn/internal/dims"
)

// SimpleFlowDriven computes the stock as the running sum of net inflow
// over time, per non-time coordinate. Inflow and outflow are annualized
// rates, so each step contributes rate times interval length.
type SimpleFlowDriven struct {
	base
}

// NewSimpleFlowDriven builds a flow-driven stock; inflow and/or outflow
// are usually supplied via cfg.
func NewSimpleFlowDriven(ds *dims.Set, cfg Config) (*SimpleFlowDriven, error) {
	b, err := newBase(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &SimpleFlowDriven{base: b}, nil
}

func (s *SimpleFlowDriven) Compute() error {
	nT, rest := s.grid.Len(), s.restSize()
	in, out, sv := s.inflow.Values(), s.outflow.Values(), s.stock.Values()
	for r := 0; r < rest; r++ {
		acc := 0.0
		for j := 0; j < nT; j++ {
			idx := j*rest + r
			acc += (in[idx] - out[idx]) * s.grid.Length(j)
			sv[idx] = acc
		}
	}
	return nil
}
