package lifetime

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// Normal is a normally distributed lifetime with mean and standard
// deviation. The distribution has nonzero density at negative ages; no
// truncation is applied here, so prefer LogNormal or FoldedNormal where
// that matters.
type Normal struct {
	core
	mean, std []float64
}

// NewNormal builds an unparameterized normal-lifetime model.
func NewNormal(ds *dims.Set, cfg Config) (*Normal, error) {
	c, err := newCore(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &Normal{core: c}, nil
}

// SetParams sets mean and standard deviation, each broadcastable to the
// model dimensions.
func (m *Normal) SetParams(mean, std *array.Array) error {
	meanValues, stdValues, err := castMeanStd(&m.core, mean, std)
	if err != nil {
		return err
	}
	m.mean, m.std = meanValues, stdValues
	m.invalidate()
	return nil
}

func (m *Normal) Table() (*Table, error) {
	if m.mean == nil {
		return nil, fmt.Errorf("%w: normal lifetime mean and std", ErrConfiguration)
	}
	return m.build(func(age float64, flat int) float64 {
		return distuv.Normal{Mu: m.mean[flat], Sigma: m.std[flat]}.Survival(age)
	}), nil
}

// castMeanStd validates and broadcasts the common mean/std parameter pair.
func castMeanStd(c *core, mean, std *array.Array) ([]float64, []float64, error) {
	meanValues, err := c.castParam(mean)
	if err != nil {
		return nil, nil, err
	}
	stdValues, err := c.castParam(std)
	if err != nil {
		return nil, nil, err
	}
	for i, v := range meanValues {
		if v <= 0 {
			return nil, nil, fmt.Errorf("%w: lifetime mean must be positive", ErrValidation)
		}
		if stdValues[i] <= 0 {
			return nil, nil, fmt.Errorf("%w: lifetime std must be positive", ErrValidation)
		}
	}
	return meanValues, stdValues, nil
}
