// SPDX-License-Identifier: MIT
// Package: spweights/weights
//
// errors.go: sentinel errors for the weights package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context (row key, expected vs observed counts) is attached with %w.

package weights

import (
	"errors"
	"fmt"
)

// ErrMalformedWeights indicates a structural invariant violation: misaligned
// neighbor/weight lengths, an unresolvable ID outside adjust mode, a duplicate
// row key or neighbor, or a dangling reference where completeness is required.
var ErrMalformedWeights = errors.New("weights: malformed weights")

// ErrInvalidOrder indicates a contiguity order smaller than 1.
var ErrInvalidOrder = errors.New("weights: order must be >= 1")

// ErrNilWeights indicates a nil *W was passed where a matrix is required.
var ErrNilWeights = errors.New("weights: nil weights matrix")

// Method tokens for weightsErrorf.
const (
	methodNew             = "New"
	methodHigherOrder     = "HigherOrder"
	methodUnion           = "Union"
	methodUpToOrder       = "UpToOrder"
	methodRemap           = "Remap"
	methodRequireComplete = "RequireComplete"
	methodLag             = "Lag"
)

// weightsErrorf returns "<method>: <message>: <sentinel>" with the sentinel wrapped.
func weightsErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
