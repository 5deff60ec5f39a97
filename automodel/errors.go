// SPDX-License-Identifier: MIT

package automodel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates y, x, w or the significance level cannot
	// support a selection.
	ErrInvalidInput = errors.New("automodel: invalid input")

	// ErrMissingKernelWeights indicates the HAC path was selected without a
	// kernel weights matrix.
	ErrMissingKernelWeights = errors.New("automodel: missing kernel weights")

	// ErrEngineFailure wraps any error raised by the regression engine, and
	// an OLS fit that came back without spatial diagnostics.
	ErrEngineFailure = errors.New("automodel: regression engine failure")

	// ErrUnknownModelType indicates a model type other than GMM_COMBO or
	// GMM_HAC.
	ErrUnknownModelType = errors.New("automodel: unknown model type")
)

const (
	methodSelect      = "Select"
	methodFromDataset = "FromDataset"
	methodKernel      = "KernelWeights"
)

// selectErrorf returns "<method>: <message>: <err>" with err wrapped.
func selectErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
