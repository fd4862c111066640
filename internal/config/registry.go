package config

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/lifetime"
	"github.com/mfalab/flowdyn/internal/stock"
)

type stockFactory func(ds *dims.Set, model lifetime.Model, cfg stock.Config) (stock.Stock, error)
type lifetimeFactory func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error)

// Registry maps the type strings of the definition schema to concrete
// stock and lifetime variants.
type Registry struct {
	stocks    map[string]stockFactory
	lifetimes map[string]lifetimeFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		stocks:    make(map[string]stockFactory),
		lifetimes: make(map[string]lifetimeFactory),
	}

	r.stocks["simple"] = func(ds *dims.Set, _ lifetime.Model, cfg stock.Config) (stock.Stock, error) {
		return stock.NewSimpleFlowDriven(ds, cfg)
	}
	r.stocks["inflow_driven"] = func(ds *dims.Set, model lifetime.Model, cfg stock.Config) (stock.Stock, error) {
		return stock.NewInflowDriven(ds, model, cfg)
	}
	r.stocks["stock_driven"] = func(ds *dims.Set, model lifetime.Model, cfg stock.Config) (stock.Stock, error) {
		return stock.NewStockDriven(ds, model, cfg)
	}
	r.stocks["stock_driven_inverse"] = func(ds *dims.Set, model lifetime.Model, cfg stock.Config) (stock.Stock, error) {
		return stock.NewStockDrivenInverse(ds, model, cfg)
	}
	r.stocks["flexible"] = func(ds *dims.Set, model lifetime.Model, cfg stock.Config) (stock.Stock, error) {
		return stock.NewFlexible(ds, model, cfg)
	}

	r.lifetimes["fixed"] = func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error) {
		m, err := lifetime.NewFixed(ds, cfg)
		if err != nil {
			return nil, err
		}
		if err := m.SetMean(array.Scalar(def.Mean)); err != nil {
			return nil, err
		}
		return m, nil
	}
	r.lifetimes["normal"] = func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error) {
		m, err := lifetime.NewNormal(ds, cfg)
		if err != nil {
			return nil, err
		}
		if err := m.SetParams(array.Scalar(def.Mean), array.Scalar(def.Std)); err != nil {
			return nil, err
		}
		return m, nil
	}
	r.lifetimes["folded_normal"] = func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error) {
		m, err := lifetime.NewFoldedNormal(ds, cfg)
		if err != nil {
			return nil, err
		}
		if err := m.SetParams(array.Scalar(def.Mean), array.Scalar(def.Std)); err != nil {
			return nil, err
		}
		return m, nil
	}
	r.lifetimes["log_normal"] = func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error) {
		m, err := lifetime.NewLogNormal(ds, cfg)
		if err != nil {
			return nil, err
		}
		if err := m.SetParams(array.Scalar(def.Mean), array.Scalar(def.Std)); err != nil {
			return nil, err
		}
		return m, nil
	}
	r.lifetimes["weibull"] = func(ds *dims.Set, def LifetimeDef, cfg lifetime.Config) (lifetime.Model, error) {
		m, err := lifetime.NewWeibull(ds, cfg)
		if err != nil {
			return nil, err
		}
		if err := m.SetParams(array.Scalar(def.Shape), array.Scalar(def.Scale)); err != nil {
			return nil, err
		}
		return m, nil
	}

	return r
}

// Stock builds the stock variant named by def over the given dimensions.
func (r *Registry) Stock(def StockDef, ds *dims.Set, cfg stock.Config) (stock.Stock, error) {
	factory, ok := r.stocks[def.Type]
	if !ok {
		return nil, fmt.Errorf("%w: stock type %q", ErrUnknownType, def.Type)
	}
	var model lifetime.Model
	if def.Lifetime != nil {
		var err error
		if model, err = r.lifetime(*def.Lifetime, ds, cfg.TimeLetter); err != nil {
			return nil, err
		}
	}
	return factory(ds, model, cfg)
}

// Lifetime builds the lifetime model named by def over the given
// dimensions.
func (r *Registry) Lifetime(def LifetimeDef, ds *dims.Set) (lifetime.Model, error) {
	return r.lifetime(def, ds, "")
}

func (r *Registry) lifetime(def LifetimeDef, ds *dims.Set, timeLetter string) (lifetime.Model, error) {
	factory, ok := r.lifetimes[def.Type]
	if !ok {
		return nil, fmt.Errorf("%w: lifetime type %q", ErrUnknownType, def.Type)
	}
	at, err := lifetime.ParseInflowAt(def.InflowAt)
	if err != nil {
		return nil, err
	}
	return factory(ds, def, lifetime.Config{
		TimeLetter:        timeLetter,
		InflowAt:          at,
		PointsPerInterval: def.PointsPerInterval,
	})
}

// StockTypes lists the registered stock type names.
func (r *Registry) StockTypes() []string {
	names := make([]string, 0, len(r.stocks))
	for name := range r.stocks {
		names = append(names, name)
	}
	return names
}

// LifetimeTypes lists the registered lifetime type names.
func (r *Registry) LifetimeTypes() []string {
	names := make([]string, 0, len(r.lifetimes))
	for name := range r.lifetimes {
		names = append(names, name)
	}
	return names
}
