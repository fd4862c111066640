package stock

import "errors"

// Domain errors for stock construction and computation.
var (
	// ErrDimensionMismatch indicates a supplied array whose dimensions
	// disagree with the stock's own dimension set.
	ErrDimensionMismatch = errors.New("stock: array dimensions do not match stock dimensions")

	// ErrConfiguration indicates a compute step that is missing required
	// state, e.g. a DSM variant without a lifetime model.
	ErrConfiguration = errors.New("stock: missing configuration")

	// ErrValidation indicates invalid stock dimensions, e.g. a time
	// dimension that is not the first axis.
	ErrValidation = errors.New("stock: invalid dimensions")
)
