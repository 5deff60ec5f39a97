package automodel

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/regress"
	"github.com/katalvlaran/spweights/weights"
)

// Label is the name of the selected specification.
type Label string

// The nine specifications Select can end with.
const (
	NoSpaceHom  Label = "No Space - Homoskedastic"
	NoSpaceHet  Label = "No Space - Heteroskedastic"
	LagHom      Label = "Spatial Lag - Homoskedastic"
	LagHet      Label = "Spatial Lag - Heteroskedastic"
	ErrorHom    Label = "Spatial Error - Homoskedastic"
	ErrorHet    Label = "Spatial Error - Heteroskedastic"
	LagErrorHAC Label = "Spatial Lag with Spatial Error - HAC"
	LagErrorHom Label = "Spatial Lag with Spatial Error - Homoskedastic"
	LagErrorHet Label = "Spatial Lag with Spatial Error - Heteroskedastic"
)

const (
	labelNoSpace = "No Space"
	labelLag     = "Spatial Lag"
	labelError   = "Spatial Error"
)

// Labels lists every label in decision-tree order.
func Labels() []Label {
	return []Label{
		NoSpaceHom, NoSpaceHet, LagHom, LagHet, ErrorHom, ErrorHet,
		LagErrorHAC, LagErrorHom, LagErrorHet,
	}
}

// HasLag reports whether the specification contains a spatial lag term.
func (l Label) HasLag() bool { return strings.HasPrefix(string(l), labelLag) }

// HasError reports whether the specification models the error term
// spatially.
func (l Label) HasError() bool {
	return strings.HasPrefix(string(l), labelError) || strings.Contains(string(l), "with "+labelError)
}

// Category is the form of spatial dependence the LM tests point to.
type Category int

const (
	// None means neither LM test is significant.
	None Category = iota
	// LagDependence means a spatially lagged dependent variable.
	LagDependence
	// ErrorDependence means spatially autocorrelated errors.
	ErrorDependence
	// Mixed means both.
	Mixed
)

func (c Category) String() string {
	switch c {
	case None:
		return "OLS"
	case LagDependence:
		return "LAG"
	case ErrorDependence:
		return "ERROR"
	case Mixed:
		return "MIXED"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ModelType picks the second-pass estimator for the MIXED category.
type ModelType string

const (
	// GMMCombo fits the combined lag + error GMM model.
	GMMCombo ModelType = "GMM_COMBO"
	// GMMHAC fits the spatial lag model with kernel HAC standard errors.
	GMMHAC ModelType = "GMM_HAC"
)

// ParseModelType accepts GMM_COMBO and GMM_HAC, case-insensitively.
func ParseModelType(s string) (ModelType, error) {
	switch ModelType(strings.ToUpper(strings.TrimSpace(s))) {
	case GMMCombo:
		return GMMCombo, nil
	case GMMHAC:
		return GMMHAC, nil
	}
	return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownModelType, s, GMMCombo, GMMHAC)
}

// Combo reports whether MIXED dependence is fitted with the combo model.
func (m ModelType) Combo() bool { return m != GMMHAC }

// Input is one selection problem.
type Input struct {
	// Y is the dependent variable; X holds one row per observation without
	// the constant.
	Y     []float64
	X     [][]float64
	NameY string
	NameX []string

	// W is order-indexed. GWK is the kernel weights matrix for HAC.
	W   *weights.W
	GWK *weights.W

	// P is the significance level, 0 < P < 1.
	P float64
	// Combo selects GM_Combo over lag-with-HAC for MIXED dependence;
	// when false GWK is required.
	Combo bool
}

// Decision is the outcome of Select. Treat it as read-only.
type Decision struct {
	RunID           string
	Label           Label
	Category        Category
	Heteroskedastic bool
	Lag             bool
	Error           bool

	// Base is the OLS fit with diagnostics; Final is the second-pass fit,
	// the same pointer as Base for No Space - Homoskedastic.
	Base  *regress.Result
	Final *regress.Result

	// Fields are the output fields in write order.
	Fields []features.Column
}
