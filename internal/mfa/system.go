package mfa

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
	"github.com/mfalab/flowdyn/internal/stock"
)

// System aggregates one model: its dimension universe, processes, flows,
// stocks and parameter arrays.
type System struct {
	name       string
	dims       *dims.Set
	timeLetter string
	processes  map[string]*Process
	flows      map[string]*Flow
	stocks     map[string]stock.Stock
	parameters map[string]*array.Array
	log        *zap.Logger
}

// NewSystem builds an empty system over the given dimension universe. A
// nil logger disables logging.
func NewSystem(name string, ds *dims.Set, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		name:       name,
		dims:       ds,
		timeLetter: "t",
		processes:  make(map[string]*Process),
		flows:      make(map[string]*Flow),
		stocks:     make(map[string]stock.Stock),
		parameters: make(map[string]*array.Array),
		log:        log,
	}
}

func (s *System) Name() string    { return s.name }
func (s *System) Dims() *dims.Set { return s.dims }

// SetTimeLetter overrides the letter of the time dimension used by the
// mass balance; the default is "t".
func (s *System) SetTimeLetter(letter string) { s.timeLetter = letter }

func (s *System) SetProcesses(p map[string]*Process)  { s.processes = p }
func (s *System) SetFlows(f map[string]*Flow)         { s.flows = f }
func (s *System) SetStocks(st map[string]stock.Stock) { s.stocks = st }

func (s *System) Processes() map[string]*Process      { return s.processes }
func (s *System) Flows() map[string]*Flow             { return s.flows }
func (s *System) Stocks() map[string]stock.Stock      { return s.stocks }
func (s *System) Parameters() map[string]*array.Array { return s.parameters }

func (s *System) SetParameter(name string, a *array.Array) {
	s.parameters[name] = a.WithName(name)
}

func (s *System) Process(name string) (*Process, error) {
	p, ok := s.processes[name]
	if !ok {
		return nil, fmt.Errorf("%w: process %q", ErrNotFound, name)
	}
	return p, nil
}

func (s *System) Flow(name string) (*Flow, error) {
	f, ok := s.flows[name]
	if !ok {
		return nil, fmt.Errorf("%w: flow %q", ErrNotFound, name)
	}
	return f, nil
}

func (s *System) Stock(name string) (stock.Stock, error) {
	st, ok := s.stocks[name]
	if !ok {
		return nil, fmt.Errorf("%w: stock %q", ErrNotFound, name)
	}
	return st, nil
}

func (s *System) Parameter(name string) (*array.Array, error) {
	a, ok := s.parameters[name]
	if !ok {
		return nil, fmt.Errorf("%w: parameter %q", ErrNotFound, name)
	}
	return a, nil
}

// ProcessNames returns the process names sorted by id.
func (s *System) ProcessNames() []string {
	names := make([]string, 0, len(s.processes))
	for name := range s.processes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.processes[names[i]].id < s.processes[names[j]].id
	})
	return names
}

// MassBalance returns the mass residual of one process: inflows minus
// outflows minus the change rate of its stocks. Stock accumulation is
// credited back to the system environment, so a consistent model has a
// near-zero balance at every process including sysenv.
func (s *System) MassBalance(name string) (*array.Array, error) {
	if _, ok := s.processes[name]; !ok {
		return nil, fmt.Errorf("%w: process %q", ErrNotFound, name)
	}

	balance := array.Zeros(dims.Empty())
	var err error
	for _, f := range s.flows {
		if f.to == name {
			if balance, err = array.Add(balance, f.array); err != nil {
				return nil, err
			}
		}
		if f.from == name {
			if balance, err = array.Sub(balance, f.array); err != nil {
				return nil, err
			}
		}
	}
	for _, st := range s.stocks {
		if st.Process() == "" {
			continue
		}
		if st.Process() != name && name != SystemEnvironment {
			continue
		}
		rate, err := array.Div(st.StockChange(), st.IntervalLengths())
		if err != nil {
			return nil, err
		}
		if st.Process() == name {
			if balance, err = array.Sub(balance, rate); err != nil {
				return nil, err
			}
		}
		if name == SystemEnvironment {
			if balance, err = array.Add(balance, rate); err != nil {
				return nil, err
			}
		}
	}
	return balance.WithName(name + "_balance"), nil
}

// BalanceViolation is one (process, time step) combination whose mass
// residual, summed over all non-time dimensions, exceeds the tolerance.
type BalanceViolation struct {
	Process  string
	TimeItem string
	Residual float64
}

// CheckMassBalance evaluates the mass balance of every process, reduced
// to the time dimension, and returns the combinations outside the
// absolute tolerance. Violations are also logged.
func (s *System) CheckMassBalance(tolerance float64) ([]BalanceViolation, error) {
	if tolerance <= 0 {
		tolerance = stock.DefaultTolerance
	}

	var violations []BalanceViolation
	for _, name := range s.ProcessNames() {
		balance, err := s.MassBalance(name)
		if err != nil {
			return nil, err
		}
		if balance.Dims().Has(s.timeLetter) {
			if balance, err = balance.SumTo(s.timeLetter); err != nil {
				return nil, err
			}
		} else if balance, err = balance.SumTo(); err != nil {
			return nil, err
		}

		td, hasTime := s.timeDim(balance)
		for i, v := range balance.Values() {
			if v <= tolerance && v >= -tolerance {
				continue
			}
			item := ""
			if hasTime {
				item = td.Item(i)
			}
			violations = append(violations, BalanceViolation{Process: name, TimeItem: item, Residual: v})
			s.log.Warn("mass balance violated",
				zap.String("system", s.name),
				zap.String("process", name),
				zap.String("time", item),
				zap.Float64("residual", v))
		}
	}
	if len(violations) == 0 {
		s.log.Info("mass balance ok",
			zap.String("system", s.name),
			zap.Int("processes", len(s.processes)))
	}
	return violations, nil
}

func (s *System) timeDim(a *array.Array) (*dims.Dimension, bool) {
	d, err := a.Dims().Get(s.timeLetter)
	if err != nil {
		return nil, false
	}
	return d, true
}
