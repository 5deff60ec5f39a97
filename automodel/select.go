// SPDX-License-Identifier: MIT

package automodel

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/logger"
	"github.com/katalvlaran/spweights/regress"
)

// Output field names and aliases. Aliases take the dependent variable name.
const (
	FieldPredy  = "Predy"
	FieldResid  = "Resid"
	FieldPredyE = "Predy_e"
	FieldEPred  = "e_Pred"
	HetPrefix   = "Het"

	aliasPredy  = "Predicted %s"
	aliasResid  = "Residual"
	aliasPredyE = "Predicted %s (Reduced Form)"
	aliasEPred  = "Predicted Error (Reduced Form)"
)

// Select runs the two-pass model search.
//
// Steps:
//  1. Validate in; when in.Combo is false GWK must be present and W is
//     row-standardized for the HAC path.
//  2. Fit OLS with spatial diagnostics.
//  3. Heteroskedastic iff the Koenker-Bassett p-value is below in.P;
//     category from LMChoice.
//  4. Fit the second-pass model, unless the base fit is already final.
//  5. Collect output fields.
//
// Errors: ErrInvalidInput and ErrMissingKernelWeights before any fit;
// ErrEngineFailure wrapping the engine's error; ctx.Err().
func Select(ctx context.Context, engine regress.Engine, in Input, opts ...Option) (*Decision, error) {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	log := o.log.With("run_id", o.runID)

	if engine == nil {
		return nil, selectErrorf(methodSelect, ErrInvalidInput, "nil regression engine")
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	nameY := in.NameY
	if nameY == "" {
		nameY = "Y"
	}

	w := in.W
	if !in.Combo && !w.RowStandardized() {
		log.Debug("row-standardizing weights for HAC estimation")
		w = w.RowStandardize()
	}
	template := regress.Request{Y: in.Y, X: in.X, W: w, NameY: nameY, NameX: in.NameX}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("fitting base OLS", "n", len(in.Y), "k", len(in.X[0])+1)
	baseReq := template
	baseReq.Model = regress.OLS
	baseReq.SpatialDiagnostics = true
	base, err := engine.Fit(ctx, baseReq)
	if err != nil {
		return nil, engineError("base OLS", err)
	}
	if base == nil || base.Diagnostics == nil || !base.Diagnostics.Spatial {
		return nil, selectErrorf(methodSelect, ErrEngineFailure, "base OLS returned no spatial diagnostics")
	}

	het := base.Diagnostics.KoenkerBassett.PValue < in.P
	cat := LMChoice(*base.Diagnostics, in.P)
	label, req := plan(cat, het, in.Combo)
	log.Info("dependence classified",
		"category", cat.String(), "heteroskedastic", het,
		"koenker_bassett_p", base.Diagnostics.KoenkerBassett.PValue)

	final := base
	if req != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full := template
		full.Model, full.Robust, full.Het = req.Model, req.Robust, req.Het
		if req.Robust == regress.RobustHAC {
			full.GWK = in.GWK
		}
		log.Info("fitting final model", "model", full.Model.String(), "robust", full.Robust.String())
		final, err = engine.Fit(ctx, full)
		if err != nil {
			return nil, engineError(string(label), err)
		}
		if final == nil {
			return nil, selectErrorf(methodSelect, ErrEngineFailure, "%s returned no result", label)
		}
	}

	fields, err := outputFields(label, het, nameY, base, final, len(in.Y))
	if err != nil {
		return nil, err
	}
	log.Info("model selected", "label", string(label))

	return &Decision{
		RunID:           o.runID,
		Label:           label,
		Category:        cat,
		Heteroskedastic: het,
		Lag:             label.HasLag(),
		Error:           label.HasError(),
		Base:            base,
		Final:           final,
		Fields:          fields,
	}, nil
}

func engineError(stage string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", methodSelect, stage, ErrEngineFailure, err)
}

func validate(in Input) error {
	if math.IsNaN(in.P) || in.P <= 0 || in.P >= 1 {
		return selectErrorf(methodSelect, ErrInvalidInput, "significance level %v outside (0, 1)", in.P)
	}
	n := len(in.Y)
	if n == 0 {
		return selectErrorf(methodSelect, ErrInvalidInput, "empty dependent variable")
	}
	if len(in.X) != n {
		return selectErrorf(methodSelect, ErrInvalidInput, "x has %d rows, y has %d", len(in.X), n)
	}
	k := len(in.X[0])
	if k == 0 {
		return selectErrorf(methodSelect, ErrInvalidInput, "no independent variables")
	}
	for i, row := range in.X {
		if len(row) != k {
			return selectErrorf(methodSelect, ErrInvalidInput, "x row %d has %d columns, want %d", i, len(row), k)
		}
	}
	if in.NameX != nil && len(in.NameX) != k {
		return selectErrorf(methodSelect, ErrInvalidInput, "%d names for %d independent variables", len(in.NameX), k)
	}
	if v := stat.PopVariance(in.Y, nil); math.IsNaN(v) || v <= 0 {
		return selectErrorf(methodSelect, ErrInvalidInput, "dependent variable has no variance")
	}
	if in.W == nil {
		return selectErrorf(methodSelect, ErrInvalidInput, "nil weights")
	}
	if in.W.N() != n {
		return selectErrorf(methodSelect, ErrInvalidInput, "weights cover %d observations, y has %d", in.W.N(), n)
	}
	if !in.Combo && in.GWK == nil {
		return selectErrorf(methodSelect, ErrMissingKernelWeights, "model type %s", GMMHAC)
	}
	return nil
}

// outputFields picks the arrays the label reports. No Space labels report
// the base fit; lag labels add the reduced form when the engine produced
// one, with NaN errors when it produced no e_pred.
func outputFields(label Label, het bool, nameY string, base, final *regress.Result, n int) ([]features.Column, error) {
	prefix := ""
	if het {
		prefix = HetPrefix
	}
	src := final
	if strings.HasPrefix(string(label), labelNoSpace) {
		src = base
	}
	if len(src.Predy) != n || len(src.Resid) != n {
		return nil, selectErrorf(methodSelect, ErrEngineFailure,
			"%s returned %d predictions and %d residuals for %d observations", label, len(src.Predy), len(src.Resid), n)
	}

	cols := []features.Column{
		{Name: prefix + FieldPredy, Alias: fmt.Sprintf(aliasPredy, nameY), Values: clone(src.Predy)},
		{Name: prefix + FieldResid, Alias: aliasResid, Values: clone(src.Resid)},
	}
	if !label.HasLag() || final.PredyE == nil {
		return cols, nil
	}
	if len(final.PredyE) != n {
		return nil, selectErrorf(methodSelect, ErrEngineFailure, "reduced form has %d values for %d observations", len(final.PredyE), n)
	}
	ePred := clone(final.EPred)
	if len(ePred) != n {
		ePred = make([]float64, n)
		for i := range ePred {
			ePred[i] = math.NaN()
		}
	}
	return append(cols,
		features.Column{Name: prefix + FieldPredyE, Alias: fmt.Sprintf(aliasPredyE, nameY), Values: clone(final.PredyE)},
		features.Column{Name: prefix + FieldEPred, Alias: aliasEPred, Values: ePred},
	), nil
}

func clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}
