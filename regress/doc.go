// Package regress defines the regression engine contract used by model
// selection, and ships a built-in engine for the estimators the selector
// needs most often.
//
// Engine is the seam: automodel only depends on the interface, so an
// external estimator (a service, a cgo binding, a fake in tests) plugs in
// by implementing Fit. Builtin covers:
//
//   - OLS with classical, White or HAC standard errors, the Koenker-Bassett
//     heteroskedasticity test and, given W, the LM error / LM lag tests and
//     their robust forms.
//   - The spatial lag model by two-stage least squares with instruments
//     [X, WX], classical, White or HAC standard errors, and reduced-form
//     predictions (I - ρW)⁻¹Xβ.
//
// GMM spatial error and combined lag+error estimators are not built in;
// Builtin returns ErrUnsupportedModel for them so callers can route those
// fits to an engine that has them.
package regress
