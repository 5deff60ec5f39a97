// SPDX-License-Identifier: MIT
// Package: spweights/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Builders themselves never panic.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"fmt"
	"math"
)

// BuilderOption customizes a constructor by mutating a builderConfig before
// construction begins.
// Complexity: applying N options costs O(N) time, O(1) space.
type BuilderOption func(*builderConfig)

// WithInverseDistance switches DistanceBand to inverse-distance decay with
// weight = d^alpha, alpha = -power. Panics unless power is positive and finite.
func WithInverseDistance(power float64) BuilderOption {
	if !(power > 0) || math.IsInf(power, 0) {
		panic(fmt.Sprintf("builder: WithInverseDistance(%g)", power))
	}
	return func(c *builderConfig) {
		c.inverse = true
		c.alpha = -power
	}
}

// WithFixedBandwidth pins the kernel bandwidth to h for every point.
// Panics unless h is positive and finite.
func WithFixedBandwidth(h float64) BuilderOption {
	if !(h > 0) || math.IsInf(h, 0) {
		panic(fmt.Sprintf("builder: WithFixedBandwidth(%g)", h))
	}
	return func(c *builderConfig) {
		c.bandwidth = h
		c.adaptive = false
	}
}

// WithAdaptiveBandwidth gives each point its own bandwidth: the distance to
// its k-th nearest neighbor.
func WithAdaptiveBandwidth() BuilderOption {
	return func(c *builderConfig) {
		c.adaptive = true
		c.bandwidth = 0
	}
}

// WithDiagonal adds a self-weighted diagonal entry (DiagonalWeight) to every
// kernel row, as HAC estimation requires.
func WithDiagonal() BuilderOption {
	return func(c *builderConfig) { c.diagonal = true }
}

// WithIDField records the ID field name on the resulting W.
func WithIDField(name string) BuilderOption {
	return func(c *builderConfig) { c.idField = name }
}

// WithRowStandardize row-standardizes the resulting W.
func WithRowStandardize() BuilderOption {
	return func(c *builderConfig) { c.rowStd = true }
}
