package regress

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/spweights/matrix"
)

// fitLag estimates y = ρWy + Xβ + u by two-stage least squares with
// instruments H = [X, WX] (constant excluded from the lag).
//
//	varb = (Z'H (H'H)⁻¹ H'Z)⁻¹,  β = varb · Z'H (H'H)⁻¹ · H'y
//
// where Z = [X, Wy]. The classical covariance is σ²·varb with σ² = u'u/n.
func (b *Builtin) fitLag(ctx context.Context, p *problem) (*Result, error) {
	if p.k < 2 {
		return nil, regressErrorf(methodLag, ErrInvalidRequest, "instruments need at least one regressor")
	}
	w := p.req.W

	wy, err := w.Lag(p.yv)
	if err != nil {
		return nil, regressErrorf(methodLag, err, "Wy")
	}
	wx, err := matrix.Lag(w, p.x.Slice(0, p.n, 1, p.k))
	if err != nil {
		return nil, regressErrorf(methodLag, err, "WX")
	}
	h, err := matrix.AppendCols(p.x, wx)
	if err != nil {
		return nil, regressErrorf(methodLag, err, "instruments")
	}
	z, err := matrix.AppendCols(p.x, mat.NewVecDense(p.n, wy))
	if err != nil {
		return nil, regressErrorf(methodLag, err, "regressors")
	}

	var hth mat.Dense
	hth.Mul(h.T(), h)
	hthi, err := matrix.Inverse(&hth)
	if err != nil {
		return nil, regressErrorf(methodLag, err, "H'H")
	}
	var zth, f1, f2 mat.Dense
	zth.Mul(z.T(), h)
	f1.Mul(&zth, hthi)
	f2.Mul(&f1, zth.T())
	varb, err := matrix.Inverse(&f2)
	if err != nil {
		return nil, regressErrorf(methodLag, err, "Z'H(H'H)⁻¹H'Z")
	}

	var hty, beta, fitted mat.VecDense
	var f3 mat.Dense
	hty.MulVec(h.T(), p.y)
	f3.Mul(varb, &f1)
	beta.MulVec(&f3, &hty)
	fitted.MulVec(z, &beta)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	betas := vecSlice(&beta)
	predy := vecSlice(&fitted)
	resid := make([]float64, p.n)
	floats.SubTo(resid, p.yv, predy)

	kz := len(betas)
	res := &Result{
		Model:  Lag,
		Robust: p.req.Robust,
		N:      p.n,
		K:      kz,
		Names:  append(append([]string(nil), p.names...), "W_"+p.nameY()),
		Betas:  betas,
		Predy:  predy,
		Resid:  resid,
		Sigma2: floats.Dot(resid, resid) / float64(p.n),
		Rho:    betas[kz-1],
	}
	if c := stat.Correlation(p.yv, predy, nil); !math.IsNaN(c) {
		res.R2 = c * c
	}

	// zhat = H (H'H)⁻¹ H'Z
	var zhat mat.Dense
	zhat.Mul(h, f1.T())
	vm, err := p.covariance(varb, &zhat, resid, res.Sigma2)
	if err != nil {
		return nil, regressErrorf(methodLag, err, "covariance")
	}
	inference(res, vm, 0)

	if err := b.reducedForm(p, res); err != nil {
		return nil, err
	}
	b.log.Debug("spatial lag fitted", "n", p.n, "rho", res.Rho, "robust", p.req.Robust.String())

	return res, nil
}

// reducedForm sets PredyE = (I - ρW)⁻¹Xβ and EPred = y - PredyE. When the
// series diverges (|ρ| ≥ 1) both are NaN and a warning is logged.
func (b *Builtin) reducedForm(p *problem, res *Result) error {
	var xb mat.VecDense
	xb.MulVec(p.x, mat.NewVecDense(p.k, res.Betas[:p.k]))

	predyE, err := matrix.PowerLag(p.req.W, res.Rho, vecSlice(&xb))
	switch {
	case errors.Is(err, matrix.ErrNotConverged):
		b.log.Warn("reduced form not computed", "rho", res.Rho, "err", err)
		res.PredyE = nanSlice(p.n)
		res.EPred = nanSlice(p.n)
		return nil
	case err != nil:
		return regressErrorf(methodLag, err, "reduced form")
	}
	res.PredyE = predyE
	res.EPred = make([]float64, p.n)
	floats.SubTo(res.EPred, p.yv, predyE)

	return nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
