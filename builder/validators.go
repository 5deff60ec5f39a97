// Package builder provides validation helpers to enforce parameter contracts
// in the weights constructors.
//
// Each function returns a wrapped sentinel via builderErrorf when its
// precondition is violated.
package builder

import "math"

// validateK ensures 1 ≤ k ≤ n-1 so that k neighbors exist for every point.
// Complexity: O(1).
func validateK(method string, k, n int) error {
	if n < 2 {
		return builderErrorf(method, ErrTooFewPoints, "need at least 2 points, got %d", n)
	}
	if k < MinK || k > n-1 {
		return builderErrorf(method, ErrInvalidK, "k must be in [%d,%d], got %d", MinK, n-1, k)
	}
	return nil
}

// validateThreshold ensures the distance threshold is positive and finite.
// Complexity: O(1).
func validateThreshold(method string, d float64) error {
	if !(d > 0) || math.IsInf(d, 0) {
		return builderErrorf(method, ErrInvalidThreshold, "threshold must be > 0 and finite, got %g", d)
	}
	return nil
}
