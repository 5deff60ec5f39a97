package automodel

import "github.com/katalvlaran/spweights/regress"

// LMChoice classifies the residual dependence from the OLS LM tests at
// significance level p.
//
// If neither LM-Error nor LM-Lag is significant the category is None.
// Otherwise the robust tests decide: both significant gives Mixed, only the
// robust lag gives LagDependence, only the robust error gives
// ErrorDependence. When neither robust test is significant the plain tests
// decide again: both significant gives Mixed, then lag before error.
func LMChoice(d regress.Diagnostics, p float64) Category {
	sigError := d.LMError.PValue < p
	sigLag := d.LMLag.PValue < p
	if !sigError && !sigLag {
		return None
	}

	sigErrorRob := d.RLMError.PValue < p
	sigLagRob := d.RLMLag.PValue < p
	switch {
	case sigErrorRob && sigLagRob:
		return Mixed
	case sigLagRob:
		return LagDependence
	case sigErrorRob:
		return ErrorDependence
	case sigError && sigLag:
		return Mixed
	case sigLag:
		return LagDependence
	default:
		return ErrorDependence
	}
}

// plan maps a category to the final label and the second-pass request.
// A nil request means the base OLS fit is final.
func plan(cat Category, het, combo bool) (Label, *regress.Request) {
	switch cat {
	case LagDependence:
		if het {
			return LagHet, &regress.Request{Model: regress.Lag, Robust: regress.RobustWhite}
		}
		return LagHom, &regress.Request{Model: regress.Lag}
	case ErrorDependence:
		if het {
			return ErrorHet, &regress.Request{Model: regress.Error, Het: true}
		}
		return ErrorHom, &regress.Request{Model: regress.Error}
	case Mixed:
		if !combo {
			return LagErrorHAC, &regress.Request{Model: regress.Lag, Robust: regress.RobustHAC}
		}
		if het {
			return LagErrorHet, &regress.Request{Model: regress.Combo, Het: true}
		}
		return LagErrorHom, &regress.Request{Model: regress.Combo}
	default:
		if het {
			return NoSpaceHet, &regress.Request{Model: regress.OLS, Robust: regress.RobustWhite}
		}
		return NoSpaceHom, nil
	}
}
