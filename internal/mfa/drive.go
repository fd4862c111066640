package mfa

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/stock"
)

// Drive fills the system's values from its parameters and computes every
// stock. Two parameter naming conventions are applied first:
//
//   - a parameter named like a flow fills that flow
//   - a parameter "<stock>.inflow", "<stock>.outflow" or "<stock>.stock"
//     fills that quantity of the named stock
//
// A stock that still has neither inflow nor stock values takes the flows
// arriving at its process as inflow. After each compute, a single
// still-zero flow into or out of the stock's process takes the computed
// inflow or outflow, closing the mass balance at that process.
func (s *System) Drive() error {
	if err := s.applyParameters(); err != nil {
		return err
	}

	names := make([]string, 0, len(s.stocks))
	for name := range s.stocks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := s.stocks[name]
		proc := st.Process()
		if proc != "" && allZero(st.Inflow().Values()) && allZero(st.Stock().Values()) {
			if err := s.inflowFromFlows(st, proc); err != nil {
				return err
			}
		}
		if err := st.Compute(); err != nil {
			return fmt.Errorf("stock %s: %w", name, err)
		}
		s.log.Debug("stock computed",
			zap.String("system", s.name),
			zap.String("stock", name),
			zap.Float64("final", lastValue(st.Stock())))
		if proc == "" {
			continue
		}
		if err := s.backfillFlow(proc, st.Inflow(), true); err != nil {
			return err
		}
		if err := s.backfillFlow(proc, st.Outflow(), false); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) applyParameters() error {
	for name, p := range s.parameters {
		if f, ok := s.flows[name]; ok {
			if err := f.array.SetFrom(p); err != nil {
				return fmt.Errorf("parameter %s: %w", name, err)
			}
			continue
		}
		stockName, quantity, ok := strings.Cut(name, ".")
		if !ok {
			continue
		}
		st, found := s.stocks[stockName]
		if !found {
			continue
		}
		var target *array.Array
		switch quantity {
		case "inflow":
			target = st.Inflow()
		case "outflow":
			target = st.Outflow()
		case "stock":
			target = st.Stock()
		default:
			continue
		}
		if err := target.SetFrom(p); err != nil {
			return fmt.Errorf("parameter %s: %w", name, err)
		}
	}
	return nil
}

// inflowFromFlows sums the nonzero flows arriving at proc into the
// stock's inflow.
func (s *System) inflowFromFlows(st stock.Stock, proc string) error {
	total := array.Zeros(dims.Empty())
	found := false
	for _, f := range s.flows {
		if f.to != proc || allZero(f.array.Values()) {
			continue
		}
		var err error
		if total, err = array.Add(total, f.array); err != nil {
			return err
		}
		found = true
	}
	if !found {
		return nil
	}
	return st.Inflow().SetFrom(total)
}

// backfillFlow assigns values to the single still-zero flow touching
// proc on the given side; with zero or several candidates the split is
// ambiguous and nothing is written.
func (s *System) backfillFlow(proc string, values *array.Array, inbound bool) error {
	var candidate *Flow
	count := 0
	for _, f := range s.flows {
		end := f.from
		if inbound {
			end = f.to
		}
		if end == proc && allZero(f.array.Values()) {
			candidate = f
			count++
		}
	}
	if count != 1 {
		return nil
	}
	return candidate.array.SetFrom(values)
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

func lastValue(a *array.Array) float64 {
	values := a.Values()
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
