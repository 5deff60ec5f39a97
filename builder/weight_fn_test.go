// Package builder_test contains unit tests for the kernel functions and the
// option constructors, covering both values and panic conditions.
package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/builder"
)

// assertPanics fails the test if the provided function does not panic.
func assertPanics(t *testing.T, fn func(), name string) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic, but none occurred", name)
		}
	}()
	fn()
}

func TestOptionConstructorsPanic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor func() builder.BuilderOption
	}{
		{"WithInverseDistance_zero", func() builder.BuilderOption { return builder.WithInverseDistance(0) }},
		{"WithInverseDistance_negative", func() builder.BuilderOption { return builder.WithInverseDistance(-1) }},
		{"WithInverseDistance_inf", func() builder.BuilderOption { return builder.WithInverseDistance(math.Inf(1)) }},
		{"WithInverseDistance_nan", func() builder.BuilderOption { return builder.WithInverseDistance(math.NaN()) }},
		{"WithFixedBandwidth_zero", func() builder.BuilderOption { return builder.WithFixedBandwidth(0) }},
		{"WithFixedBandwidth_negative", func() builder.BuilderOption { return builder.WithFixedBandwidth(-2) }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assertPanics(t, func() { tc.constructor() }, tc.name)
		})
	}
}

func TestKernelFuncs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   builder.KernelFunc
		z    float64
		want float64
	}{
		{"uniform", builder.Uniform, 0.7, 0.5},
		{"triangular_0", builder.Triangular, 0, 1},
		{"triangular_half", builder.Triangular, 0.5, 0.5},
		{"quadratic_0", builder.Quadratic, 0, 0.75},
		{"quadratic_half", builder.Quadratic, 0.5, 0.5625},
		{"quartic_0", builder.Quartic, 0, 0.9375},
		{"quartic_half", builder.Quartic, 0.5, 0.52734375},
		{"gaussian_0", builder.Gaussian, 0, 0.3989422804014327},
		{"gaussian_1", builder.Gaussian, 1, 0.24197072451914337},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, tc.fn(tc.z), 1e-12)
		})
	}
}

func TestParseKernel(t *testing.T) {
	t.Parallel()

	for _, name := range builder.KernelNames() {
		fn, err := builder.ParseKernel(name)
		require.NoError(t, err, name)
		require.NotNil(t, fn)
	}

	fn, err := builder.ParseKernel(" Epanechnikov ")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, fn(0), 1e-12)

	fn, err = builder.ParseKernel("BISQUARE")
	require.NoError(t, err)
	assert.InDelta(t, 0.9375, fn(0), 1e-12)

	_, err = builder.ParseKernel("cosine")
	assert.ErrorIs(t, err, builder.ErrUnknownKernel)
}
