package lifetime

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// FoldedNormal folds the negative tail of a normal distribution onto the
// positive axis. Parameters are mu and sigma of the normal BEFORE
// folding; the folded curve has a different mean and spread.
type FoldedNormal struct {
	core
	mean, std []float64
}

// NewFoldedNormal builds an unparameterized folded-normal lifetime model.
func NewFoldedNormal(ds *dims.Set, cfg Config) (*FoldedNormal, error) {
	c, err := newCore(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &FoldedNormal{core: c}, nil
}

// SetParams sets the pre-folding mu and sigma, each broadcastable to the
// model dimensions.
func (m *FoldedNormal) SetParams(mean, std *array.Array) error {
	meanValues, stdValues, err := castMeanStd(&m.core, mean, std)
	if err != nil {
		return err
	}
	m.mean, m.std = meanValues, stdValues
	m.invalidate()
	return nil
}

func (m *FoldedNormal) Table() (*Table, error) {
	if m.mean == nil {
		return nil, fmt.Errorf("%w: folded normal lifetime mean and std", ErrConfiguration)
	}
	unit := distuv.UnitNormal
	return m.build(func(age float64, flat int) float64 {
		// distuv has no folded normal; CDF(x) = Phi((x-mu)/s) + Phi((x+mu)/s) - 1
		mu, sigma := m.mean[flat], m.std[flat]
		cdf := unit.CDF((age-mu)/sigma) + unit.CDF((age+mu)/sigma) - 1
		return 1 - cdf
	}), nil
}
