package config

import (
	"go.uber.org/zap"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/mfa"
	"github.com/mfalab/flowdyn/internal/stock"
)

// Build assembles a definition into a system with zero-valued flows and
// stocks, ready for parameterization and compute.
func Build(def *Definition, log *zap.Logger) (*mfa.System, error) {
	return NewRegistry().Build(def, log)
}

func (r *Registry) Build(def *Definition, log *zap.Logger) (*mfa.System, error) {
	ds, err := def.BuildDims()
	if err != nil {
		return nil, err
	}

	processes, err := mfa.MakeProcesses(def.Processes)
	if err != nil {
		return nil, err
	}

	flowDefs := make([]mfa.FlowDefinition, 0, len(def.Flows))
	for _, fd := range def.Flows {
		flowDefs = append(flowDefs, mfa.FlowDefinition{
			From:    fd.From,
			To:      fd.To,
			Letters: fd.Dims,
			Name:    fd.Name,
		})
	}
	flows, err := mfa.MakeEmptyFlows(processes, flowDefs, ds)
	if err != nil {
		return nil, err
	}

	stockDefs := make([]mfa.StockDefinition, 0, len(def.Stocks))
	for _, sd := range def.Stocks {
		sd := sd
		stockDefs = append(stockDefs, mfa.StockDefinition{
			Name:    sd.Name,
			Process: sd.Process,
			Letters: sd.Dims,
			New: func(sub *dims.Set, cfg stock.Config) (stock.Stock, error) {
				cfg.TimeLetter = def.TimeLetter
				return r.Stock(sd, sub, cfg)
			},
		})
	}
	stocks, err := mfa.MakeEmptyStocks(stockDefs, processes, ds)
	if err != nil {
		return nil, err
	}

	sys := mfa.NewSystem(def.Name, ds, log)
	if def.TimeLetter != "" {
		sys.SetTimeLetter(def.TimeLetter)
	}
	sys.SetProcesses(processes)
	sys.SetFlows(flows)
	sys.SetStocks(stocks)

	for _, pd := range def.Parameters {
		sub, err := ds.Subset(pd.Dims...)
		if err != nil {
			return nil, err
		}
		a, err := array.New(sub, pd.Values)
		if err != nil {
			return nil, err
		}
		sys.SetParameter(pd.Name, a)
	}
	return sys, nil
}
