// Package matrix is the dense linear-algebra layer used by the regression
// engine. It builds gonum matrices from feature columns and weights, and
// wraps the few factorizations the estimators need with the package's
// sentinel errors.
//
// What lives here:
//
//   - Design / Vec / Column: validated construction of *mat.Dense design
//     matrices and vectors from [][]float64 input.
//   - Inverse / Sandwich: (A)⁻¹ with a singularity check, and B·M·B for
//     robust covariance estimators.
//   - Lag / SpatialTrace / PowerLag: products with a sparse weights.W that
//     never materialize the n×n matrix.
//   - Dense: the explicit n×n form of a W, for small problems and tests.
//
// Every function validates shapes first and returns ErrDimensionMismatch,
// ErrNaNInf or ErrSingular; nothing panics on caller input.
package matrix
