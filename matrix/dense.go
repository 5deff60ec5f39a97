package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Design builds the n×k design matrix from row-major observations. With
// constant set a leading column of ones is added, so k = cols+1.
//
// Errors: ErrBadShape (no rows), ErrDimensionMismatch (ragged rows),
// ErrNaNInf.
// Complexity: O(n·k).
func Design(rows [][]float64, constant bool) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, matrixErrorf(opDesign, ErrBadShape, "no observations")
	}
	c := len(rows[0])
	off := 0
	if constant {
		off = 1
	}
	if c+off == 0 {
		return nil, matrixErrorf(opDesign, ErrBadShape, "no columns")
	}
	data := make([]float64, 0, n*(c+off))
	for i, r := range rows {
		if len(r) != c {
			return nil, matrixErrorf(opDesign, ErrDimensionMismatch, "row %d has %d columns, want %d", i, len(r), c)
		}
		if constant {
			data = append(data, 1)
		}
		for j, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opDesign, ErrNaNInf, "row %d column %d", i, j)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(n, c+off, data), nil
}

// Vec copies v into a column vector after checking every entry is finite.
func Vec(v []float64) (*mat.VecDense, error) {
	if len(v) == 0 {
		return nil, matrixErrorf(opVec, ErrBadShape, "empty vector")
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, matrixErrorf(opVec, ErrNaNInf, "entry %d", i)
		}
	}
	return mat.NewVecDense(len(v), append([]float64(nil), v...)), nil
}

// Column returns column j of m as a fresh slice.
func Column(m mat.Matrix, j int) []float64 {
	r, _ := m.Dims()
	out := make([]float64, r)
	mat.Col(out, j, m)
	return out
}

// AppendCols returns [a | b] for matrices with the same row count.
func AppendCols(a, b mat.Matrix) (*mat.Dense, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb {
		return nil, matrixErrorf(opAppendCols, ErrDimensionMismatch, "%d vs %d rows", ra, rb)
	}
	out := mat.NewDense(ra, ca+cb, nil)
	out.Augment(a, b)
	return out, nil
}

// Inverse returns a⁻¹ for a square, well-conditioned a.
//
// Errors: ErrNonSquare, ErrSingular when gonum reports the matrix
// singular or its condition number beyond working precision.
// Complexity: O(k³).
func Inverse(a mat.Matrix) (*mat.Dense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, matrixErrorf(opInverse, ErrNonSquare, "%d×%d", r, c)
	}
	var inv mat.Dense
	// gonum reports both exact and numerical singularity as a mat.Condition.
	if err := inv.Inverse(a); err != nil {
		return nil, matrixErrorf(opInverse, ErrSingular, "%v", err)
	}
	return &inv, nil
}

// Sandwich returns bread·meat·bread, the shape of every robust covariance
// estimator used by the engine.
func Sandwich(bread, meat mat.Matrix) (*mat.Dense, error) {
	br, bc := bread.Dims()
	mr, mc := meat.Dims()
	if br != bc || mr != mc || bc != mr {
		return nil, matrixErrorf(opSandwich, ErrDimensionMismatch, "bread %d×%d, meat %d×%d", br, bc, mr, mc)
	}
	var tmp, out mat.Dense
	tmp.Mul(bread, meat)
	out.Mul(&tmp, bread)
	return &out, nil
}
