package lifetime

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// Fixed is a delta-distributed lifetime: the whole cohort stays until it
// reaches the mean age, then leaves at once.
type Fixed struct {
	core
	mean []float64
}

// NewFixed builds an unparameterized fixed-lifetime model.
func NewFixed(ds *dims.Set, cfg Config) (*Fixed, error) {
	c, err := newCore(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &Fixed{core: c}, nil
}

// SetMean sets the fixed lifetime, broadcastable to the model dimensions.
func (m *Fixed) SetMean(mean *array.Array) error {
	values, err := m.castParam(mean)
	if err != nil {
		return err
	}
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: fixed lifetime mean must be non-negative", ErrValidation)
		}
	}
	m.mean = values
	m.invalidate()
	return nil
}

func (m *Fixed) Table() (*Table, error) {
	if m.mean == nil {
		return nil, fmt.Errorf("%w: fixed lifetime mean", ErrConfiguration)
	}
	return m.build(func(age float64, flat int) float64 {
		// a cohort with lifetime 3.5 is present at ages 0..3, gone at 4
		if age < m.mean[flat] {
			return 1
		}
		return 0
	}), nil
}
