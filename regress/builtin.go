// SPDX-License-Identifier: MIT

package regress

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/spweights/logger"
	"github.com/katalvlaran/spweights/matrix"
	"github.com/katalvlaran/spweights/weights"
)

// Builtin is the in-process Engine.
type Builtin struct {
	log logger.Logger
}

// Option configures a Builtin.
type Option func(*Builtin)

// WithLogger routes estimator warnings to l.
func WithLogger(l logger.Logger) Option {
	return func(b *Builtin) { b.log = logger.OrNop(l) }
}

// NewBuiltin returns the built-in engine.
func NewBuiltin(opts ...Option) *Builtin {
	b := &Builtin{log: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ Engine = (*Builtin)(nil)

// Fit validates req and dispatches to the estimator for req.Model.
//
// Errors: ErrInvalidRequest, ErrMissingWeights, ErrUnsupportedModel
// (Error, Combo), matrix.ErrSingular for a rank-deficient design, ctx.Err().
func (b *Builtin) Fit(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch req.Model {
	case OLS, Lag:
	default:
		return nil, regressErrorf(methodFit, ErrUnsupportedModel, "%s", req.Model)
	}
	p, err := newProblem(req)
	if err != nil {
		return nil, err
	}

	var res *Result
	if req.Model == Lag {
		res, err = b.fitLag(ctx, p)
	} else {
		res, err = b.fitOLS(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	res.Summary = summarize(p, res)

	return res, nil
}

// problem is a validated request with its design matrix.
type problem struct {
	req   Request
	n, k  int
	x     *mat.Dense
	y     *mat.VecDense
	yv    []float64
	names []string
}

func newProblem(req Request) (*problem, error) {
	n := len(req.Y)
	if n == 0 {
		return nil, regressErrorf(methodFit, ErrInvalidRequest, "empty dependent variable")
	}
	if len(req.X) != n {
		return nil, regressErrorf(methodFit, ErrInvalidRequest, "y has %d observations, X has %d rows", n, len(req.X))
	}
	x, err := matrix.Design(req.X, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodFit, ErrInvalidRequest, err)
	}
	y, err := matrix.Vec(req.Y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodFit, ErrInvalidRequest, err)
	}
	_, k := x.Dims()
	if n <= k {
		return nil, regressErrorf(methodFit, ErrInvalidRequest, "%d observations for %d coefficients", n, k)
	}

	needW := req.Model == Lag || (req.Model == OLS && req.SpatialDiagnostics)
	if needW {
		if err := checkWeights("W", req.W, n); err != nil {
			return nil, err
		}
	}
	if req.Robust == RobustHAC {
		if err := checkWeights("GWK", req.GWK, n); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, k+1)
	names = append(names, "CONSTANT")
	for j := 0; j < k-1; j++ {
		if j < len(req.NameX) && req.NameX[j] != "" {
			names = append(names, req.NameX[j])
		} else {
			names = append(names, fmt.Sprintf("X%d", j+1))
		}
	}

	return &problem{req: req, n: n, k: k, x: x, y: y, yv: append([]float64(nil), req.Y...), names: names}, nil
}

func checkWeights(name string, w *weights.W, n int) error {
	if w == nil {
		return regressErrorf(methodFit, ErrMissingWeights, "%s is required", name)
	}
	if w.N() != n || !w.OrderIndexed() {
		return regressErrorf(methodFit, ErrInvalidRequest, "%s must be keyed 0..%d, has %d rows", name, n-1, w.N())
	}
	return nil
}

func (p *problem) nameY() string {
	if p.req.NameY != "" {
		return p.req.NameY
	}
	return "y"
}

// covariance returns the coefficient covariance for the requested
// estimator. bread is (X'X)⁻¹ or its 2SLS analogue, z the regressors the
// meat is built from and sig2 the classical scale.
func (p *problem) covariance(bread *mat.Dense, z *mat.Dense, resid []float64, sig2 float64) (*mat.Dense, error) {
	switch p.req.Robust {
	case RobustWhite:
		return matrix.Sandwich(bread, crossWeighted(z, squares(resid)))
	case RobustHAC:
		meat, err := hacMeat(z, resid, p.req.GWK)
		if err != nil {
			return nil, err
		}
		return matrix.Sandwich(bread, meat)
	default:
		var vm mat.Dense
		vm.Scale(sig2, bread)
		return &vm, nil
	}
}

// crossWeighted returns Z' diag(d) Z.
func crossWeighted(z *mat.Dense, d []float64) *mat.Dense {
	var scaled mat.Dense
	scaled.Apply(func(i, _ int, v float64) float64 { return v * d[i] }, z)
	var out mat.Dense
	out.Mul(z.T(), &scaled)
	return &out
}

// hacMeat returns Σ_i Σ_j k_ij u_i u_j z_i z_j', symmetrized.
func hacMeat(z *mat.Dense, u []float64, gwk *weights.W) (*mat.Dense, error) {
	var zu mat.Dense
	zu.Apply(func(i, _ int, v float64) float64 { return v * u[i] }, z)
	kzu, err := matrix.Lag(gwk, &zu)
	if err != nil {
		return nil, err
	}
	var psi, sym mat.Dense
	psi.Mul(zu.T(), kzu)
	sym.Add(&psi, psi.T())
	sym.Scale(0.5, &sym)
	return &sym, nil
}

func squares(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * x
	}
	return out
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// inference fills StdErr, ZStat and PValues from vm. With dof > 0 the
// p-values come from Student's t, otherwise from the standard normal.
func inference(res *Result, vm *mat.Dense, dof float64) {
	k := len(res.Betas)
	res.StdErr = make([]float64, k)
	res.ZStat = make([]float64, k)
	res.PValues = make([]float64, k)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	for j := 0; j < k; j++ {
		se := math.Sqrt(vm.At(j, j))
		res.StdErr[j] = se
		res.ZStat[j] = res.Betas[j] / se
		a := math.Abs(res.ZStat[j])
		if dof > 0 {
			res.PValues[j] = 2 * t.Survival(a)
		} else {
			res.PValues[j] = 2 * distuv.UnitNormal.Survival(a)
		}
	}
}

// r2 is 1 - SSR/SST for target and residuals.
func r2(target, resid []float64) float64 {
	mean := floats.Sum(target) / float64(len(target))
	var sst float64
	for _, v := range target {
		sst += (v - mean) * (v - mean)
	}
	if sst == 0 {
		return 0
	}
	return 1 - floats.Dot(resid, resid)/sst
}

// chi2 builds a Test with its upper-tail chi-square p-value.
func chi2(stat float64, df int) Test {
	if df <= 0 || math.IsNaN(stat) {
		return Test{Statistic: stat, DF: df, PValue: math.NaN()}
	}
	return Test{Statistic: stat, DF: df, PValue: distuv.ChiSquared{K: float64(df)}.Survival(stat)}
}
