// SPDX-License-Identifier: MIT
// Package: spweights/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • inverse     = false   (binary distance-band weights)
//   • bandwidth   = 0       (derived from the k-th neighbor distance)
//   • adaptive    = false   (one fixed bandwidth for all points)
//   • diagonal    = false   (no self weights)
//   • idField     = ""      (UNKNOWN)
//   • rowStd      = false

package builder

import "github.com/katalvlaran/spweights/weights"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// Inverse-distance decay: weight = d^alpha with alpha = -power.
	inverse bool
	alpha   float64

	// Kernel bandwidth policy.
	bandwidth float64 // >0 when fixed by the caller
	adaptive  bool

	diagonal bool
	idField  string
	rowStd   bool
}

// newBuilderConfig applies all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// weightsOptions maps the config onto weights.New options.
func (c builderConfig) weightsOptions() []weights.Option {
	opts := []weights.Option{weights.WithIDField(c.idField)}
	if c.diagonal {
		opts = append(opts, weights.WithDiagonal())
	}
	return opts
}

// finish applies post-construction transforms requested by the options.
func (c builderConfig) finish(w *weights.W) *weights.W {
	if c.rowStd {
		return w.RowStandardize()
	}
	return w
}
