// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels wrapped with context; tests check
// them via errors.Is. Nothing panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (no rows or no columns).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. ragged input rows or a vector whose length differs from the matrix.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when a matrix cannot be inverted to working precision.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotConverged indicates a power series that did not converge.
	ErrNotConverged = errors.New("matrix: series did not converge")
)

// Operation name constants for unified error wrapping.
const (
	opDesign     = "Design"
	opVec        = "Vec"
	opInverse    = "Inverse"
	opSandwich   = "Sandwich"
	opLag        = "Lag"
	opDense      = "Dense"
	opPowerLag   = "PowerLag"
	opAppendCols = "AppendCols"
)

// matrixErrorf wraps err as "<op>: <message>: <err>".
func matrixErrorf(op string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
