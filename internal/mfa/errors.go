package mfa

import "errors"

var (
	// ErrDefinition indicates an inconsistent system layout, e.g. a flow
	// between undefined processes.
	ErrDefinition = errors.New("mfa: invalid system definition")

	// ErrNotFound indicates a lookup of an unknown process, flow, stock
	// or parameter.
	ErrNotFound = errors.New("mfa: not found")
)
