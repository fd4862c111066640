package stock

import (
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
)

// Factory builds a stock variant from a dimension set and config. Dynamic
// variants are adapted by closing over their lifetime model.
type Factory func(*dims.Set, Config) (Stock, error)

// Convert rebuilds a stock as another variant, carrying over its name,
// process and current quantities. The source is left untouched; quantities
// are copied, so computing the result does not write back.
func Convert(s Stock, build Factory) (Stock, error) {
	cfg := Config{
		Name:       s.Name(),
		TimeLetter: s.Dims().Dim(0).Letter(),
		Process:    s.Process(),
		Inflow:     s.Inflow(),
		Outflow:    s.Outflow(),
		Stock:      s.Stock(),
	}
	return build(s.Dims(), cfg)
}

// ModelOf returns the lifetime model of a dynamic stock variant, or nil
// for variants that carry none.
func ModelOf(s Stock) lifetime.Model {
	if d, ok := s.(interface{ LifetimeModel() lifetime.Model }); ok {
		return d.LifetimeModel()
	}
	return nil
}
