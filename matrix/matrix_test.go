package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spweights/matrix"
	"github.com/katalvlaran/spweights/weights"
)

// strip3 is row-standardized rook contiguity on 0-1-2.
func strip3(t *testing.T) *weights.W {
	t.Helper()
	w, err := weights.New(map[int][]int{0: {1}, 1: {0, 2}, 2: {1}}, nil)
	require.NoError(t, err)
	return w.RowStandardize()
}

func TestDesign(t *testing.T) {
	t.Parallel()

	x, err := matrix.Design([][]float64{{2, 3}, {4, 5}}, true)
	require.NoError(t, err)
	r, c := x.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 1}, matrix.Column(x, 0))
	assert.Equal(t, []float64{3, 5}, matrix.Column(x, 2))

	tests := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"empty", nil, matrix.ErrBadShape},
		{"ragged", [][]float64{{1, 2}, {3}}, matrix.ErrDimensionMismatch},
		{"nan", [][]float64{{1, math.NaN()}}, matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		_, err := matrix.Design(tc.rows, true)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}

	_, err = matrix.Vec([]float64{1, math.Inf(-1)})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestInverse(t *testing.T) {
	t.Parallel()

	inv, err := matrix.Inverse(mat.NewDense(2, 2, []float64{2, 0, 0, 4}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, inv.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, inv.At(1, 1), 1e-12)

	_, err = matrix.Inverse(mat.NewDense(2, 2, []float64{1, 2, 2, 4}))
	assert.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Inverse(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestSandwich(t *testing.T) {
	t.Parallel()

	b := mat.NewDense(2, 2, []float64{1, 0, 0, 2})
	m := mat.NewDense(2, 2, []float64{3, 1, 1, 3})
	s, err := matrix.Sandwich(b, m)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(s, mat.NewDense(2, 2, []float64{3, 2, 2, 12}), 1e-12))

	_, err = matrix.Sandwich(b, mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLagMatchesDense(t *testing.T) {
	t.Parallel()

	w := strip3(t)
	x := mat.NewDense(3, 2, []float64{1, 10, 2, 20, 3, 30})
	lag, err := matrix.Lag(w, x)
	require.NoError(t, err)

	wd, err := matrix.Dense(w)
	require.NoError(t, err)
	var want mat.Dense
	want.Mul(wd, x)
	assert.True(t, mat.EqualApprox(lag, &want, 1e-12))

	_, err = matrix.Lag(w, mat.NewDense(2, 1, nil))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSpatialTrace(t *testing.T) {
	t.Parallel()

	w := strip3(t)
	wd, err := matrix.Dense(w)
	require.NoError(t, err)
	var wtw, ww mat.Dense
	wtw.Mul(wd.T(), wd)
	ww.Mul(wd, wd)

	assert.InDelta(t, mat.Trace(&wtw)+mat.Trace(&ww), matrix.SpatialTrace(w), 1e-12)
	assert.InDelta(t, 4.5, matrix.SpatialTrace(w), 1e-12)
}

func TestPowerLag(t *testing.T) {
	t.Parallel()

	w := strip3(t)
	got, err := matrix.PowerLag(w, 0.5, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2, 2}, got, 1e-8)

	_, err = matrix.PowerLag(w, 1, []float64{1, 1, 1})
	assert.ErrorIs(t, err, matrix.ErrNotConverged)
}
