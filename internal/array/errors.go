package array

import "errors"

// Domain errors for array construction and algebra.
var (
	// ErrShape indicates a value buffer whose length does not match the
	// dimension set.
	ErrShape = errors.New("array: values do not match dimension shape")

	// ErrDimensionMismatch indicates operand dimensions that cannot be
	// reconciled, e.g. a cast target that is not a superset.
	ErrDimensionMismatch = errors.New("array: dimension mismatch")

	// ErrAmbiguous indicates an item lookup that matched more than one
	// dimension.
	ErrAmbiguous = errors.New("array: item found in multiple dimensions")
)
