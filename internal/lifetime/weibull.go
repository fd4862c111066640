package lifetime

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// Weibull is a Weibull-distributed lifetime with the standard shape and
// scale parameterization.
type Weibull struct {
	core
	shape, scale []float64
}

// NewWeibull builds an unparameterized Weibull lifetime model.
func NewWeibull(ds *dims.Set, cfg Config) (*Weibull, error) {
	c, err := newCore(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &Weibull{core: c}, nil
}

// SetParams sets shape and scale, each broadcastable to the model
// dimensions.
func (m *Weibull) SetParams(shape, scale *array.Array) error {
	shapeValues, err := m.castParam(shape)
	if err != nil {
		return err
	}
	scaleValues, err := m.castParam(scale)
	if err != nil {
		return err
	}
	for i, v := range shapeValues {
		if v <= 0 {
			return fmt.Errorf("%w: weibull shape must be positive", ErrValidation)
		}
		if scaleValues[i] <= 0 {
			return fmt.Errorf("%w: weibull scale must be positive", ErrValidation)
		}
	}
	m.shape, m.scale = shapeValues, scaleValues
	m.invalidate()
	return nil
}

func (m *Weibull) Table() (*Table, error) {
	if m.shape == nil {
		return nil, fmt.Errorf("%w: weibull shape and scale", ErrConfiguration)
	}
	return m.build(func(age float64, flat int) float64 {
		return distuv.Weibull{K: m.shape[flat], Lambda: m.scale[flat]}.Survival(age)
	}), nil
}
