package mfa

import "fmt"

// SystemEnvironment is the mandatory name of the process with id 0. It
// stands for everything outside the system boundary, so flows can cross
// the boundary without special-casing.
const SystemEnvironment = "sysenv"

// Process is a node in the system layout. Flows run between two
// processes; stocks attach to one. Processes carry no values.
type Process struct {
	name string
	id   int
}

func (p *Process) Name() string { return p.name }
func (p *Process) ID() int      { return p.id }

// MakeProcesses builds the process table from an ordered name list. IDs
// follow definition order, and the first process must be the system
// environment.
func MakeProcesses(names []string) (map[string]*Process, error) {
	if len(names) == 0 || names[0] != SystemEnvironment {
		return nil, fmt.Errorf("%w: the first process must be named %q", ErrDefinition, SystemEnvironment)
	}
	processes := make(map[string]*Process, len(names))
	for id, name := range names {
		if _, ok := processes[name]; ok {
			return nil, fmt.Errorf("%w: duplicate process %q", ErrDefinition, name)
		}
		processes[name] = &Process{name: name, id: id}
	}
	return processes, nil
}
