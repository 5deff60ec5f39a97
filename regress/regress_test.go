package regress_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spweights/builder"
	"github.com/katalvlaran/spweights/lattice"
	"github.com/katalvlaran/spweights/matrix"
	"github.com/katalvlaran/spweights/regress"
	"github.com/katalvlaran/spweights/weights"
)

// rook5 is row-standardized rook contiguity on a 5×5 lattice.
func rook5(t *testing.T) *weights.W {
	t.Helper()
	adj, err := lattice.Adjacency(5, 5, lattice.Rook)
	require.NoError(t, err)
	w, err := builder.Contiguity(adj, 1, false, builder.WithRowStandardize())
	require.NoError(t, err)
	return w
}

// data returns a single regressor and y = 1 + 2x + e with deterministic noise.
func data(n int) ([]float64, [][]float64) {
	y := make([]float64, n)
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		xi := float64((i*7)%11) + float64(i)/3
		x[i] = []float64{xi}
		y[i] = 1 + 2*xi + math.Sin(float64(i)*1.7)
	}
	return y, x
}

func TestOLSSimple(t *testing.T) {
	t.Parallel()

	res, err := regress.NewBuiltin().Fit(context.Background(), regress.Request{
		Y:     []float64{2.1, 3.9, 6.2, 7.8, 10.1},
		X:     [][]float64{{1}, {2}, {3}, {4}, {5}},
		NameY: "HOVAL",
		NameX: []string{"INC"},
	})
	require.NoError(t, err)
	assert.Equal(t, regress.OLS, res.Model)
	assert.Equal(t, []string{"CONSTANT", "INC"}, res.Names)
	assert.InDeltaSlice(t, []float64{0.05, 1.99}, res.Betas, 1e-9)

	for i, y := range []float64{2.1, 3.9, 6.2, 7.8, 10.1} {
		assert.InDelta(t, y, res.Predy[i]+res.Resid[i], 1e-12)
	}
	assert.Greater(t, res.R2, 0.99)
	assert.Nil(t, res.PredyE)
	require.NotNil(t, res.Diagnostics)
	assert.False(t, res.Diagnostics.Spatial)
	assert.Equal(t, 1, res.Diagnostics.KoenkerBassett.DF)
	assert.Contains(t, res.Summary, "ORDINARY LEAST SQUARES")
	assert.Contains(t, res.Summary, "HOVAL")
}

func TestOLSRobustCovariances(t *testing.T) {
	t.Parallel()

	y, x := data(25)
	eng := regress.NewBuiltin()

	plain, err := eng.Fit(context.Background(), regress.Request{Y: y, X: x})
	require.NoError(t, err)
	white, err := eng.Fit(context.Background(), regress.Request{Y: y, X: x, Robust: regress.RobustWhite})
	require.NoError(t, err)
	assert.Equal(t, plain.Betas, white.Betas)
	assert.NotEqual(t, plain.StdErr, white.StdErr)

	// A kernel with only its unit diagonal reduces HAC to White.
	nb := make(map[int][]int, 25)
	ws := make(map[int][]float64, 25)
	for i := 0; i < 25; i++ {
		nb[i], ws[i] = []int{i}, []float64{1}
	}
	gwk, err := weights.New(nb, ws, weights.WithDiagonal())
	require.NoError(t, err)
	hac, err := eng.Fit(context.Background(), regress.Request{Y: y, X: x, Robust: regress.RobustHAC, GWK: gwk})
	require.NoError(t, err)
	assert.InDeltaSlice(t, white.StdErr, hac.StdErr, 1e-10)
}

func TestOLSSpatialDiagnostics(t *testing.T) {
	t.Parallel()

	w := rook5(t)
	y, x := data(25)
	res, err := regress.NewBuiltin().Fit(context.Background(), regress.Request{
		Y: y, X: x, W: w, SpatialDiagnostics: true,
	})
	require.NoError(t, err)
	d := res.Diagnostics
	require.NotNil(t, d)
	require.True(t, d.Spatial)

	// Recompute LM error and LM lag with dense algebra.
	wd, err := matrix.Dense(w)
	require.NoError(t, err)
	u := mat.NewVecDense(25, res.Resid)
	yv := mat.NewVecDense(25, y)
	var wu, wy, wtw, ww mat.Dense
	wu.Mul(wd, u)
	wy.Mul(wd, yv)
	wtw.Mul(wd.T(), wd)
	ww.Mul(wd, wd)
	tr := mat.Trace(&wtw) + mat.Trace(&ww)
	sig2 := mat.Dot(u, u) / 25
	ue := mat.Dot(u, wu.ColView(0)) / sig2
	assert.InDelta(t, ue*ue/tr, d.LMError.Statistic, 1e-9)

	for _, tc := range []regress.Test{d.KoenkerBassett, d.LMError, d.LMLag, d.RLMError, d.RLMLag} {
		assert.GreaterOrEqual(t, tc.PValue, 0.0)
		assert.LessOrEqual(t, tc.PValue, 1.0)
		assert.GreaterOrEqual(t, tc.Statistic, 0.0)
	}
	assert.Equal(t, 1, d.LMLag.DF)
	assert.Contains(t, res.Summary, "Robust LM (error)")
}

func TestLagRecoversParameters(t *testing.T) {
	t.Parallel()

	w := rook5(t)
	_, x := data(25)
	xb := make([]float64, 25)
	for i := range xb {
		xb[i] = 1 + 2*x[i][0]
	}
	y, err := matrix.PowerLag(w, 0.4, xb)
	require.NoError(t, err)

	res, err := regress.NewBuiltin().Fit(context.Background(), regress.Request{
		Model: regress.Lag, Y: y, X: x, W: w, NameY: "CRIME",
	})
	require.NoError(t, err)
	assert.Equal(t, regress.Lag, res.Model)
	assert.InDeltaSlice(t, []float64{1, 2, 0.4}, res.Betas, 1e-6)
	assert.InDelta(t, 0.4, res.Rho, 1e-6)
	assert.Equal(t, "W_CRIME", res.Names[2])
	require.Len(t, res.PredyE, 25)
	assert.InDeltaSlice(t, y, res.PredyE, 1e-6)
	assert.InDeltaSlice(t, make([]float64, 25), res.EPred, 1e-6)
	assert.Contains(t, res.Summary, "SPATIAL TWO STAGE LEAST SQUARES")
}

func TestLagHACNeedsKernel(t *testing.T) {
	t.Parallel()

	w := rook5(t)
	y, x := data(25)
	eng := regress.NewBuiltin()
	_, err := eng.Fit(context.Background(), regress.Request{Model: regress.Lag, Robust: regress.RobustHAC, Y: y, X: x, W: w})
	assert.ErrorIs(t, err, regress.ErrMissingWeights)

	adj, err := lattice.New(5, 5, lattice.Rook)
	require.NoError(t, err)
	pts, err := builder.Planar(adj.Centroids())
	require.NoError(t, err)
	gwk, err := builder.Kernel(pts, builder.Triangular, 2, builder.WithDiagonal())
	require.NoError(t, err)

	res, err := eng.Fit(context.Background(), regress.Request{Model: regress.Lag, Robust: regress.RobustHAC, Y: y, X: x, W: w, GWK: gwk})
	require.NoError(t, err)
	for _, se := range res.StdErr {
		assert.False(t, math.IsNaN(se))
	}
}

func TestFitValidation(t *testing.T) {
	t.Parallel()

	w := rook5(t)
	y, x := data(25)
	small, err := weights.New(map[int][]int{0: {1}, 1: {0}}, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  regress.Request
		want error
	}{
		{"empty y", regress.Request{}, regress.ErrInvalidRequest},
		{"rows mismatch", regress.Request{Y: y, X: x[:3]}, regress.ErrInvalidRequest},
		{"nan", regress.Request{Y: []float64{1, math.NaN(), 3}, X: [][]float64{{1}, {2}, {3}}}, regress.ErrInvalidRequest},
		{"too few obs", regress.Request{Y: []float64{1, 2}, X: [][]float64{{1}, {2}}}, regress.ErrInvalidRequest},
		{"lag without w", regress.Request{Model: regress.Lag, Y: y, X: x}, regress.ErrMissingWeights},
		{"diag without w", regress.Request{Y: y, X: x, SpatialDiagnostics: true}, regress.ErrMissingWeights},
		{"w wrong size", regress.Request{Y: y, X: x, W: small, SpatialDiagnostics: true}, regress.ErrInvalidRequest},
		{"error model", regress.Request{Model: regress.Error, Y: y, X: x, W: w}, regress.ErrUnsupportedModel},
		{"combo model", regress.Request{Model: regress.Combo, Het: true, Y: y, X: x, W: w}, regress.ErrUnsupportedModel},
		{"singular", regress.Request{Y: []float64{1, 2, 3, 4}, X: [][]float64{{1}, {1}, {1}, {1}}}, matrix.ErrSingular},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := regress.NewBuiltin().Fit(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFitCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	y, x := data(10)
	_, err := regress.NewBuiltin().Fit(ctx, regress.Request{Y: y, X: x})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModelStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GM_Lag", regress.Lag.String())
	assert.Equal(t, "GM_Combo", regress.Combo.String())
	assert.Equal(t, "hac", regress.RobustHAC.String())
}
