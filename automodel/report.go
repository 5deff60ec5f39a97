package automodel

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/spweights/regress"
)

// Report is the JSON form of a Decision, without the per-observation
// arrays.
type Report struct {
	RunID           string        `json:"run_id"`
	Label           Label         `json:"label"`
	Category        string        `json:"category"`
	Heteroskedastic bool          `json:"heteroskedastic"`
	Lag             bool          `json:"lag"`
	Error           bool          `json:"error"`
	BaseModel       string        `json:"base_model"`
	FinalModel      string        `json:"final_model"`
	Robust          string        `json:"robust"`
	Diagnostics     []ReportTest  `json:"diagnostics,omitempty"`
	Coefficients    []ReportCoef  `json:"coefficients,omitempty"`
	Fields          []ReportField `json:"fields"`
	Summary         string        `json:"summary,omitempty"`
}

// ReportTest is one OLS diagnostic.
type ReportTest struct {
	Name      string    `json:"name"`
	Statistic jsonFloat `json:"statistic"`
	DF        int       `json:"df"`
	PValue    jsonFloat `json:"p_value"`
}

// ReportCoef is one coefficient of the final model.
type ReportCoef struct {
	Name   string    `json:"name"`
	Beta   jsonFloat `json:"beta"`
	StdErr jsonFloat `json:"std_err,omitempty"`
	Z      jsonFloat `json:"z,omitempty"`
	PValue jsonFloat `json:"p_value,omitempty"`
}

// ReportField names an output field.
type ReportField struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// jsonFloat encodes NaN and infinities as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// Report summarizes d.
func (d *Decision) Report() Report {
	r := Report{
		RunID:           d.RunID,
		Label:           d.Label,
		Category:        d.Category.String(),
		Heteroskedastic: d.Heteroskedastic,
		Lag:             d.Lag,
		Error:           d.Error,
	}
	if d.Base != nil {
		r.BaseModel = d.Base.Model.String()
		if diag := d.Base.Diagnostics; diag != nil {
			r.Diagnostics = []ReportTest{
				reportTest("Koenker-Bassett", diag.KoenkerBassett),
				reportTest("LM (error)", diag.LMError),
				reportTest("LM (lag)", diag.LMLag),
				reportTest("Robust LM (error)", diag.RLMError),
				reportTest("Robust LM (lag)", diag.RLMLag),
			}
		}
	}
	if f := d.Final; f != nil {
		r.FinalModel = f.Model.String()
		r.Robust = f.Robust.String()
		r.Summary = f.Summary
		for i, name := range f.Names {
			if i >= len(f.Betas) {
				break
			}
			c := ReportCoef{Name: name, Beta: jsonFloat(f.Betas[i])}
			if i < len(f.StdErr) && i < len(f.ZStat) && i < len(f.PValues) {
				c.StdErr, c.Z, c.PValue = jsonFloat(f.StdErr[i]), jsonFloat(f.ZStat[i]), jsonFloat(f.PValues[i])
			}
			r.Coefficients = append(r.Coefficients, c)
		}
	}
	r.Fields = make([]ReportField, len(d.Fields))
	for i, c := range d.Fields {
		r.Fields[i] = ReportField{Name: c.Name, Alias: c.Alias}
	}
	return r
}

func reportTest(name string, t regress.Test) ReportTest {
	return ReportTest{Name: name, Statistic: jsonFloat(t.Statistic), DF: t.DF, PValue: jsonFloat(t.PValue)}
}

// ReportJSON encodes d.Report() as indented JSON.
func (d *Decision) ReportJSON() ([]byte, error) {
	return json.MarshalIndent(d.Report(), "", "  ")
}
