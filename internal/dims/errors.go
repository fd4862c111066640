package dims

import "errors"

// Domain errors for dimension construction and lookup.
var (
	// ErrValidation indicates a malformed dimension: empty name, a letter
	// that is not a single character, or duplicate items.
	ErrValidation = errors.New("dims: invalid dimension")

	// ErrNotFound indicates a letter or name lookup that matched nothing.
	ErrNotFound = errors.New("dims: dimension not found")

	// ErrConflict indicates two dimensions sharing a letter but disagreeing
	// on their item lists.
	ErrConflict = errors.New("dims: conflicting dimensions share a letter")

	// ErrNotNumeric indicates numeric items were requested from a dimension
	// built from plain labels.
	ErrNotNumeric = errors.New("dims: dimension items are not numeric")
)
