// SPDX-License-Identifier: MIT

package regress

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spweights/matrix"
)

// koenkerBassett regresses the squared residuals on X; the statistic is
// n·R² with k-1 degrees of freedom.
func koenkerBassett(p *problem, xtxi *mat.Dense, resid []float64) Test {
	e2 := squares(resid)
	var xte, gamma, fit mat.VecDense
	xte.MulVec(p.x.T(), mat.NewVecDense(p.n, e2))
	gamma.MulVec(xtxi, &xte)
	fit.MulVec(p.x, &gamma)

	aux := make([]float64, p.n)
	floats.SubTo(aux, e2, vecSlice(&fit))

	return chi2(float64(p.n)*r2(e2, aux), p.k-1)
}

// lmTests computes the Lagrange multiplier tests against a spatial error
// and a spatial lag alternative, and their robust forms.
//
//	σ²   = u'u/n
//	T    = tr(W'W + WW)
//	nJ   = ((WXβ)'M(WXβ) + T·σ²) / σ²,  M = I - X(X'X)⁻¹X'
//	LMe  = (u'Wu/σ²)² / T
//	LMl  = (u'Wy/σ²)² / nJ
//	RLMe = (u'Wu/σ² - T·(u'Wy/σ²)/nJ)² / (T·(1 - T/nJ))
//	RLMl = (u'Wy/σ² - u'Wu/σ²)² / (nJ - T)
func lmTests(p *problem, xtxi *mat.Dense, predy, resid []float64, diag *Diagnostics) error {
	w := p.req.W
	t := matrix.SpatialTrace(w)
	if t == 0 {
		return regressErrorf(methodDiag, ErrInvalidRequest, "weights have no links")
	}

	wu, err := w.Lag(resid)
	if err != nil {
		return regressErrorf(methodDiag, err, "Wu")
	}
	wy, err := w.Lag(p.yv)
	if err != nil {
		return regressErrorf(methodDiag, err, "Wy")
	}
	wxb, err := w.Lag(predy)
	if err != nil {
		return regressErrorf(methodDiag, err, "WXb")
	}

	sig2 := floats.Dot(resid, resid) / float64(p.n)

	// M·wxb = wxb - X(X'X)⁻¹X'wxb
	var xtv, coef, proj mat.VecDense
	xtv.MulVec(p.x.T(), mat.NewVecDense(p.n, wxb))
	coef.MulVec(xtxi, &xtv)
	proj.MulVec(p.x, &coef)
	mwxb := make([]float64, p.n)
	floats.SubTo(mwxb, wxb, vecSlice(&proj))

	nj := (floats.Dot(wxb, mwxb) + t*sig2) / sig2
	ue := floats.Dot(resid, wu) / sig2
	ul := floats.Dot(resid, wy) / sig2

	diag.Spatial = true
	diag.LMError = chi2(ue*ue/t, 1)
	diag.LMLag = chi2(ul*ul/nj, 1)
	re := ue - t*ul/nj
	diag.RLMError = chi2(re*re/(t*(1-t/nj)), 1)
	rl := ul - ue
	diag.RLMLag = chi2(rl*rl/(nj-t), 1)

	return nil
}
