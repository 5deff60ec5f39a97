package regress

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spweights/matrix"
)

// fitOLS estimates β = (X'X)⁻¹X'y.
// Complexity: O(n·k²) plus O(nnz·k) for the spatial diagnostics.
func (b *Builtin) fitOLS(ctx context.Context, p *problem) (*Result, error) {
	var xtx mat.Dense
	xtx.Mul(p.x.T(), p.x)
	xtxi, err := matrix.Inverse(&xtx)
	if err != nil {
		return nil, regressErrorf(methodOLS, err, "X'X")
	}

	var xty, beta, fitted mat.VecDense
	xty.MulVec(p.x.T(), p.y)
	beta.MulVec(xtxi, &xty)
	fitted.MulVec(p.x, &beta)

	predy := vecSlice(&fitted)
	resid := make([]float64, p.n)
	floats.SubTo(resid, p.yv, predy)
	utu := floats.Dot(resid, resid)
	dof := float64(p.n - p.k)

	res := &Result{
		Model:  OLS,
		Robust: p.req.Robust,
		N:      p.n,
		K:      p.k,
		Names:  p.names,
		Betas:  vecSlice(&beta),
		Predy:  predy,
		Resid:  resid,
		Sigma2: utu / dof,
		R2:     r2(p.yv, resid),
	}
	vm, err := p.covariance(xtxi, p.x, resid, res.Sigma2)
	if err != nil {
		return nil, regressErrorf(methodOLS, err, "covariance")
	}
	inference(res, vm, dof)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	diag := &Diagnostics{KoenkerBassett: koenkerBassett(p, xtxi, resid)}
	if p.req.SpatialDiagnostics {
		if err := lmTests(p, xtxi, predy, resid, diag); err != nil {
			return nil, err
		}
	}
	res.Diagnostics = diag
	b.log.Debug("ols fitted", "n", p.n, "k", p.k, "r2", res.R2, "robust", p.req.Robust.String())

	return res, nil
}
