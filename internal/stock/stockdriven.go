package stock

import (
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
)

// StockDriven recovers the inflow sequence that reproduces a given total
// stock trajectory, then derives the outflow.
//
// The survival table forms a lower triangular system S^T * inflow = stock
// per non-time coordinate: at each step, the surviving part of all known
// cohorts is subtracted from the target and the remainder is attributed
// to the new cohort, divided by its own same-period survival.
type StockDriven struct {
	dsmBase
}

// NewStockDriven builds a stock-driven dynamic stock model; the target
// stock trajectory is usually supplied via cfg.
func NewStockDriven(ds *dims.Set, model lifetime.Model, cfg Config) (*StockDriven, error) {
	d, err := newDSMBase(ds, model, cfg)
	if err != nil {
		return nil, err
	}
	return &StockDriven{dsmBase: d}, nil
}

func (s *StockDriven) Compute() error {
	table, err := s.model.Table()
	if err != nil {
		return err
	}
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

	s.fillStockFromInflow(table)
	s.fillOutflowFromInflow(table)
	return nil
}

// StockDrivenInverse computes the same result as StockDriven through an
// explicitly inverted survival matrix. It exists as a numerically
// independent path for cross-checking, not as a behavioral variant.
type StockDrivenInverse struct {
	dsmBase
}

// NewStockDrivenInverse builds the inverse-formulation stock-driven model.
func NewStockDrivenInverse(ds *dims.Set, model lifetime.Model, cfg Config) (*StockDrivenInverse, error) {
	d, err := newDSMBase(ds, model, cfg)
	if err != nil {
		return nil, err
	}
	return &StockDrivenInverse{dsmBase: d}, nil
}

func (s *StockDrivenInverse) Compute() error {
	table, err := s.model.Table()
	if err != nil {
		return err
	}
	nT, rest := table.Steps(), table.RestSize()
	in, sv := s.inflow.Values(), s.stock.Values()

	// Per coordinate: invert the lower triangular survival matrix A with
	// A[j][i] = S[i,j], then inflow = A^-1 * stock.
	a := make([]float64, nT*nT)
	inv := make([]float64, nT*nT)
	for r := 0; r < rest; r++ {
		for j := 0; j < nT; j++ {
			for i := 0; i <= j; i++ {
				a[j*nT+i] = table.At(i, j, r)
			}
		}
		invertLowerTriangular(a, inv, nT)
		for j := 0; j < nT; j++ {
			total := 0.0
			for i := 0; i <= j; i++ {
				total += inv[j*nT+i] * sv[i*rest+r]
			}
			in[j*rest+r] = total
		}
	}

	s.fillStockFromInflow(table)
	s.fillOutflowFromInflow(table)
	return nil
}

// invertLowerTriangular computes inv = a^-1 for a lower triangular n×n
// matrix by forward substitution on the identity columns.
func invertLowerTriangular(a, inv []float64, n int) {
	for i := range inv {
		inv[i] = 0
	}
	for col := 0; col < n; col++ {
		for row := col; row < n; row++ {
			v := 0.0
			if row == col {
				v = 1.0
			}
			for k := col; k < row; k++ {
				v -= a[row*n+k] * inv[k*n+col]
			}
			inv[row*n+col] = v / a[row*n+row]
		}
	}
}
