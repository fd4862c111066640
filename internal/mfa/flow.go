package mfa

import (
	"fmt"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/dims"
)

// Flow is a labeled array of mass per time running from one process to
// another. The process names are lookup handles into the system's
// process table.
type Flow struct {
	array *array.Array
	from  string
	to    string
}

// NewFlow wraps an array as a flow between two named processes.
func NewFlow(a *array.Array, from, to string) *Flow {
	return &Flow{array: a, from: from, to: to}
}

func (f *Flow) Array() *array.Array { return f.array }
func (f *Flow) From() string        { return f.from }
func (f *Flow) To() string          { return f.to }
func (f *Flow) Name() string        { return f.array.Name() }

// FlowDefinition declares one flow: its endpoints and the letters of the
// dimensions it is resolved over. Name is optional; the default is the
// endpoint names joined by an arrow.
type FlowDefinition struct {
	From    string
	To      string
	Letters []string
	Name    string
}

// DefaultName is the flow name used when a definition has none.
func (d FlowDefinition) DefaultName() string {
	return d.From + " => " + d.To
}

// MakeEmptyFlows initializes one zero-valued flow per definition, each
// over the named subset of ds.
func MakeEmptyFlows(processes map[string]*Process, definitions []FlowDefinition, ds *dims.Set) (map[string]*Flow, error) {
	flows := make(map[string]*Flow, len(definitions))
	for _, def := range definitions {
		if _, ok := processes[def.From]; !ok {
			return nil, fmt.Errorf("%w: flow source process %q", ErrDefinition, def.From)
		}
		if _, ok := processes[def.To]; !ok {
			return nil, fmt.Errorf("%w: flow target process %q", ErrDefinition, def.To)
		}
		sub, err := ds.Subset(def.Letters...)
		if err != nil {
			return nil, fmt.Errorf("%w: flow %s: %v", ErrDefinition, def.DefaultName(), err)
		}
		name := def.Name
		if name == "" {
			name = def.DefaultName()
		}
		if _, ok := flows[name]; ok {
			return nil, fmt.Errorf("%w: duplicate flow %q", ErrDefinition, name)
		}
		flows[name] = NewFlow(array.Zeros(sub).WithName(name), def.From, def.To)
	}
	return flows, nil
}
