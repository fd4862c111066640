package config

import "errors"

var (
	// ErrDefinition indicates an incomplete or contradictory definition.
	ErrDefinition = errors.New("config: invalid definition")

	// ErrUnknownType indicates a stock or lifetime type with no registry
	// entry.
	ErrUnknownType = errors.New("config: unknown type")
)
