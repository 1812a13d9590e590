package life

import "errors"

// Domain errors for grid operations. Out-of-bounds access and dimension
// mismatches are programming errors and surface as panics wrapping these.
var (
	// ErrInvalidSize indicates a grid side length that is not positive.
	ErrInvalidSize = errors.New("life: grid side length must be positive")

	// ErrOutOfBounds indicates a cell coordinate outside [0, n).
	ErrOutOfBounds = errors.New("life: cell coordinate out of bounds")

	// ErrDimensionMismatch indicates an empty or non-square cell matrix.
	ErrDimensionMismatch = errors.New("life: grid is empty or not square")

	// ErrUnknownPattern indicates a seed pattern name that is not registered.
	ErrUnknownPattern = errors.New("life: unknown pattern")

	// ErrPatternTooLarge indicates a seed pattern that does not fit the grid.
	ErrPatternTooLarge = errors.New("life: pattern does not fit grid")
)
