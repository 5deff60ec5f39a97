package regress

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spweights/weights"
)

// Model names an estimator.
type Model int

const (
	// OLS is ordinary least squares.
	OLS Model = iota
	// Lag is the spatial lag model y = ρWy + Xβ + u.
	Lag
	// Error is the GMM spatial error model.
	Error
	// Combo is the GMM model with both a lag and an error term.
	Combo
)

func (m Model) String() string {
	switch m {
	case OLS:
		return "OLS"
	case Lag:
		return "GM_Lag"
	case Error:
		return "GM_Error"
	case Combo:
		return "GM_Combo"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Robust selects the standard error estimator.
type Robust int

const (
	// RobustNone uses the classical covariance σ²(X'X)⁻¹.
	RobustNone Robust = iota
	// RobustWhite uses White's heteroskedasticity-consistent covariance.
	RobustWhite
	// RobustHAC uses the kernel HAC covariance; Request.GWK is required.
	RobustHAC
)

func (r Robust) String() string {
	switch r {
	case RobustNone:
		return "none"
	case RobustWhite:
		return "white"
	case RobustHAC:
		return "hac"
	default:
		return fmt.Sprintf("Robust(%d)", int(r))
	}
}

// Request is one estimation.
type Request struct {
	Model  Model
	Robust Robust

	// Het selects the heteroskedastic variant of Error and Combo.
	Het bool

	// Y is the dependent variable; X holds one row per observation and
	// excludes the constant, which the engine adds.
	Y []float64
	X [][]float64

	// W is an order-indexed weights matrix, normally row-standardized.
	W *weights.W
	// GWK is an order-indexed kernel weights matrix with a unit diagonal.
	GWK *weights.W

	// SpatialDiagnostics asks OLS for the LM tests; W is then required.
	SpatialDiagnostics bool

	NameY string
	NameX []string
}

// Test is one diagnostic statistic.
type Test struct {
	Statistic float64
	DF        int
	PValue    float64
}

// Diagnostics are the OLS tests the model selector branches on.
type Diagnostics struct {
	KoenkerBassett Test
	LMError        Test
	LMLag          Test
	RLMError       Test
	RLMLag         Test
	// Spatial is false when only the Koenker-Bassett test was computed.
	Spatial bool
}

// Result is a fitted model. PredyE and EPred are only set when the model
// contains a spatial lag.
type Result struct {
	Model  Model
	Robust Robust
	N, K   int

	Names   []string
	Betas   []float64
	StdErr  []float64
	ZStat   []float64
	PValues []float64

	Predy  []float64
	Resid  []float64
	PredyE []float64
	EPred  []float64

	Sigma2 float64
	// R2 is the coefficient of determination for OLS and the squared
	// correlation of y and the fit for the lag model.
	R2 float64
	// Rho is the spatial autoregressive coefficient of a lag model.
	Rho float64

	Diagnostics *Diagnostics
	Summary     string
}

// Engine fits regression models.
type Engine interface {
	Fit(ctx context.Context, req Request) (*Result, error)
}
