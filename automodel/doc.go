// Package automodel chooses a regression specification for a dataset with
// possible spatial dependence.
//
// Select fits OLS with spatial diagnostics through a regress.Engine, reads
// the Koenker-Bassett test to decide heteroskedasticity and the LM tests to
// place the residual dependence in one of four categories (see LMChoice),
// then runs the second-pass estimator the category calls for:
//
//	NONE   robust (White) OLS when heteroskedastic, else the base fit
//	LAG    spatial lag 2SLS, White standard errors when heteroskedastic
//	ERROR  GMM spatial error, heteroskedastic or homoskedastic
//	MIXED  GMM combo (lag + error), or spatial lag with kernel HAC errors
//
// The result is a Decision naming one of nine fixed labels, carrying both
// fits and the output fields (Predy, Resid and for lag models Predy_e and
// e_Pred, prefixed "Het" when heteroskedastic).
//
// Any engine failure aborts the selection; no partial Decision is returned.
package automodel
