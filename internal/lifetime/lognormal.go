package lifetime

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// LogNormal is a lognormally distributed lifetime. Mean and standard
// deviation describe the lognormal curve itself, not the underlying
// normal distribution; the conversion happens internally.
type LogNormal struct {
	core
	mu, sigma []float64 // parameters of the underlying normal
}

// NewLogNormal builds an unparameterized lognormal lifetime model.
func NewLogNormal(ds *dims.Set, cfg Config) (*LogNormal, error) {
	c, err := newCore(ds, cfg)
	if err != nil {
		return nil, err
	}
	return &LogNormal{core: c}, nil
}

// SetParams sets mean and standard deviation of the lognormal curve, each
// broadcastable to the model dimensions.
func (m *LogNormal) SetParams(mean, std *array.Array) error {
	meanValues, stdValues, err := castMeanStd(&m.core, mean, std)
	if err != nil {
		return err
	}
	m.mu = make([]float64, len(meanValues))
	m.sigma = make([]float64, len(meanValues))
	for i := range meanValues {
		ratio := 1 + meanValues[i]*meanValues[i]/(stdValues[i]*stdValues[i])
		m.mu[i] = math.Log(meanValues[i] / math.Sqrt(ratio))
		m.sigma[i] = math.Sqrt(math.Log(ratio))
	}
	m.invalidate()
	return nil
}

func (m *LogNormal) Table() (*Table, error) {
	if m.mu == nil {
		return nil, fmt.Errorf("%w: lognormal lifetime mean and std", ErrConfiguration)
	}
	return m.build(func(age float64, flat int) float64 {
		return distuv.LogNormal{Mu: m.mu[flat], Sigma: m.sigma[flat]}.Survival(age)
	}), nil
}
