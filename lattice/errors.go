package lattice

import "errors"

var (
	// ErrEmptyGrid indicates a lattice with no rows or no columns.
	ErrEmptyGrid = errors.New("lattice: grid must have at least one row and one column")
	// ErrNonRectangular indicates mask rows of differing lengths.
	ErrNonRectangular = errors.New("lattice: all rows must have the same length")
)
