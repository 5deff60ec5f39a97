// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spweights/weights"
)

// DefaultPowerTolerance stops PowerLag once a series term's max norm drops below it.
const DefaultPowerTolerance = 1e-10

// DefaultPowerMaxIter bounds the PowerLag series.
const DefaultPowerMaxIter = 10000

// Lag returns W·M column by column. w must be keyed by order positions.
// Complexity: O(nnz·cols).
func Lag(w *weights.W, m mat.Matrix) (*mat.Dense, error) {
	r, c := m.Dims()
	if w.N() != r {
		return nil, matrixErrorf(opLag, ErrDimensionMismatch, "weights has %d rows, matrix %d", w.N(), r)
	}
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		lag, err := w.Lag(col)
		if err != nil {
			return nil, matrixErrorf(opLag, err, "column %d", j)
		}
		out.SetCol(j, lag)
	}
	return out, nil
}

// Dense materializes an order-indexed W as an n×n matrix.
func Dense(w *weights.W) (*mat.Dense, error) {
	if !w.OrderIndexed() {
		return nil, matrixErrorf(opDense, weights.ErrNotOrderIndexed, "n=%d", w.N())
	}
	n := w.N()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		nb, ws := w.Row(i)
		for k, j := range nb {
			out.Set(i, j, ws[k])
		}
	}
	return out, nil
}

// SpatialTrace returns tr(W'W + WW) = Σ w_ij² + Σ w_ij·w_ji, the scale term
// of the LM tests, without forming any product.
// Complexity: O(nnz·log d) with d the largest row length.
func SpatialTrace(w *weights.W) float64 {
	var t float64
	for _, i := range w.IDs() {
		nb, ws := w.Row(i)
		for k, j := range nb {
			t += ws[k] * ws[k]
			if back, ok := weightOf(w, j, i); ok {
				t += ws[k] * back
			}
		}
	}
	return t
}

func weightOf(w *weights.W, i, j int) (float64, bool) {
	nb, ws := w.Row(i)
	for k, v := range nb {
		if v == j {
			return ws[k], true
		}
	}
	return 0, false
}

// PowerLag returns (I - ρW)⁻¹x via the series x + ρWx + ρ²W²x + …, which
// converges for |ρ| < 1 and a row-standardized W.
//
// Errors: ErrNotConverged when |ρ| ≥ 1 or the series is still moving after
// DefaultPowerMaxIter terms.
func PowerLag(w *weights.W, rho float64, x []float64) ([]float64, error) {
	if math.Abs(rho) >= 1 {
		return nil, matrixErrorf(opPowerLag, ErrNotConverged, "|rho|=%g", math.Abs(rho))
	}
	sum := append([]float64(nil), x...)
	term := append([]float64(nil), x...)
	for it := 0; it < DefaultPowerMaxIter; it++ {
		next, err := w.Lag(term)
		if err != nil {
			return nil, matrixErrorf(opPowerLag, err, "term %d", it)
		}
		var maxAbs float64
		for i := range next {
			next[i] *= rho
			sum[i] += next[i]
			if a := math.Abs(next[i]); a > maxAbs {
				maxAbs = a
			}
		}
		if maxAbs < DefaultPowerTolerance {
			return sum, nil
		}
		term = next
	}
	return nil, matrixErrorf(opPowerLag, ErrNotConverged, "after %d terms", DefaultPowerMaxIter)
}
