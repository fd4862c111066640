package mfa

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/stock"
)

// StockFactory builds a concrete stock variant over the given dimensions.
type StockFactory func(ds *dims.Set, cfg stock.Config) (stock.Stock, error)

// StockDefinition declares one stock: its name, the process it attaches
// to, the letters of its dimensions, and the factory that picks the
// variant.
type StockDefinition struct {
	Name    string
	Process string
	Letters []string
	New     StockFactory
}

// MakeEmptyStocks initializes one zero-valued stock per definition.
func MakeEmptyStocks(definitions []StockDefinition, processes map[string]*Process, ds *dims.Set) (map[string]stock.Stock, error) {
	stocks := make(map[string]stock.Stock, len(definitions))
	for _, def := range definitions {
		if def.New == nil {
			return nil, fmt.Errorf("%w: stock %q has no factory", ErrDefinition, def.Name)
		}
		if def.Process != "" {
			if _, ok := processes[def.Process]; !ok {
				return nil, fmt.Errorf("%w: stock %q attaches to unknown process %q", ErrDefinition, def.Name, def.Process)
			}
		}
		sub, err := ds.Subset(def.Letters...)
		if err != nil {
			return nil, fmt.Errorf("%w: stock %q: %v", ErrDefinition, def.Name, err)
		}
		st, err := def.New(sub, stock.Config{Name: def.Name, Process: def.Process})
		if err != nil {
			return nil, err
		}
		if _, ok := stocks[def.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate stock %q", ErrDefinition, def.Name)
		}
		stocks[def.Name] = st
	}
	return stocks, nil
}
