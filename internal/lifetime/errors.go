package lifetime

import "errors"

// Domain errors for lifetime model configuration.
var (
	// ErrValidation indicates an invalid model configuration value, e.g.
	// points per interval outside [1, 10] or a non-positive parameter.
	ErrValidation = errors.New("lifetime: invalid configuration")

	// ErrConfiguration indicates a compute step reached before all required
	// distribution parameters were set.
	ErrConfiguration = errors.New("lifetime: parameters not set")
)
