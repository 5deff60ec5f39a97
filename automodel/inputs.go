package automodel

import (
	"slices"

	"github.com/katalvlaran/spweights/builder"
	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/logger"
	"github.com/katalvlaran/spweights/weights"
)

// Defaults for the HAC kernel and the significance level.
const (
	DefaultP         = 0.1
	DefaultKernel    = "uniform"
	DefaultKernelK   = builder.DefaultKernelK
	DefaultModelType = GMMCombo
)

// KernelWeights builds the HAC kernel matrix: a fixed-bandwidth kernel of
// the named function over the k nearest neighbors, with a unit diagonal.
func KernelWeights(pts *builder.Points, function string, k int) (*weights.W, error) {
	fn, err := builder.ParseKernel(function)
	if err != nil {
		return nil, selectErrorf(methodKernel, err, "kernel function %q", function)
	}
	gwk, err := builder.Kernel(pts, fn, k, builder.WithDiagonal())
	if err != nil {
		return nil, selectErrorf(methodKernel, err, "%s kernel with k = %d", function, k)
	}
	return gwk, nil
}

// FromDataset fills Y, X and their names from ds. The ID field may not be
// the dependent variable. The ID field and the dependent variable are
// dropped from xs with a warning; at least one regressor must remain.
func FromDataset(ds *features.Dataset, y string, xs []string, log logger.Logger) (Input, error) {
	log = logger.OrNop(log)
	if ds.IDField != "" && y == ds.IDField {
		return Input{}, selectErrorf(methodFromDataset, ErrInvalidInput, "ID field %q cannot be the dependent variable", y)
	}

	names := make([]string, 0, len(xs))
	for _, x := range xs {
		switch {
		case ds.IDField != "" && x == ds.IDField:
			log.Warn("ID field removed from independent variables", "field", x)
		case x == y:
			log.Warn("dependent variable removed from independent variables", "field", x)
		case slices.Contains(names, x):
			log.Warn("duplicate independent variable ignored", "field", x)
		default:
			names = append(names, x)
		}
	}
	if len(names) == 0 {
		return Input{}, selectErrorf(methodFromDataset, ErrInvalidInput, "no independent variables")
	}

	yv, err := ds.Field(y)
	if err != nil {
		return Input{}, selectErrorf(methodFromDataset, ErrInvalidInput, "dependent variable: %v", err)
	}
	rows, err := ds.Rows(names)
	if err != nil {
		return Input{}, selectErrorf(methodFromDataset, ErrInvalidInput, "independent variables: %v", err)
	}

	return Input{Y: yv, X: rows, NameY: y, NameX: names, P: DefaultP, Combo: DefaultModelType.Combo()}, nil
}
