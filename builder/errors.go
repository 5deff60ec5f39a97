// SPDX-License-Identifier: MIT
// Package: spweights/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with builderErrorf, which wraps via %w.
//   • Builders never panic at runtime; validation panics are confined to
//     the WithX option constructors.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewPoints indicates an empty coordinate set, or one too small for
// the requested neighbor count.
var ErrTooFewPoints = errors.New("builder: too few points")

// ErrDimensionMismatch indicates coordinates of differing or zero dimension,
// or a non-finite coordinate.
var ErrDimensionMismatch = errors.New("builder: inconsistent coordinates")

// ErrInvalidK indicates a neighbor count outside [1, n-1].
var ErrInvalidK = errors.New("builder: k out of range")

// ErrInvalidThreshold indicates a distance threshold that is not positive and finite.
var ErrInvalidThreshold = errors.New("builder: invalid distance threshold")

// ErrInvalidBandwidth indicates a kernel bandwidth that resolved to zero,
// e.g. when every point coincides.
var ErrInvalidBandwidth = errors.New("builder: invalid kernel bandwidth")

// ErrCoincidentPoints indicates inverse-distance weights requested for two
// points at distance 0.
var ErrCoincidentPoints = errors.New("builder: coincident points")

// ErrUnknownKernel indicates a kernel function name ParseKernel does not know.
var ErrUnknownKernel = errors.New("builder: unknown kernel function")

// builderErrorf wraps err with the given method context.
// It returns an error of the form "<Method>: <formatted message>: <err>".
//
// Complexity: O(len(format) + Σlen(args)), negligible for our use.
func builderErrorf(method string, err error, format string, args ...interface{}) error {
	inner := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %s: %w", method, inner, err)
}
