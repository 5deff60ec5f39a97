// SPDX-License-Identifier: MIT
// Package: spweights/regress
//
// errors.go: sentinel errors for the regression engine.

package regress

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModel indicates the engine has no estimator for the
// requested model.
var ErrUnsupportedModel = errors.New("regress: unsupported model")

// ErrInvalidRequest indicates inconsistent inputs: empty or ragged data,
// fewer observations than coefficients, or weights of the wrong size.
var ErrInvalidRequest = errors.New("regress: invalid request")

// ErrMissingWeights indicates W (lag model, spatial diagnostics) or the
// kernel weights (HAC) are required but absent.
var ErrMissingWeights = errors.New("regress: missing weights")

const (
	methodFit  = "Fit"
	methodOLS  = "OLS"
	methodLag  = "GM_Lag"
	methodDiag = "Diagnostics"
)

// regressErrorf returns "<method>: <message>: <err>" with err wrapped.
func regressErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
