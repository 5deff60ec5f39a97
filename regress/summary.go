package regress

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// summarize renders a plain-text report of res.
func summarize(p *problem, res *Result) string {
	var sb strings.Builder
	title := "ORDINARY LEAST SQUARES"
	if res.Model == Lag {
		title = "SPATIAL TWO STAGE LEAST SQUARES"
	}
	fmt.Fprintf(&sb, "SUMMARY OF OUTPUT: %s\n", title)
	fmt.Fprintf(&sb, "Dependent Variable : %s\n", p.nameY())
	fmt.Fprintf(&sb, "Number of Observations: %d  Number of Variables: %d\n", res.N, res.K)
	if res.Model == Lag {
		fmt.Fprintf(&sb, "Pseudo R-squared : %.4f\n", res.R2)
	} else {
		fmt.Fprintf(&sb, "R-squared : %.4f\n", res.R2)
	}
	if res.Robust != RobustNone {
		fmt.Fprintf(&sb, "Standard errors : %s\n", strings.ToUpper(res.Robust.String()))
	}

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	stat := "t-Statistic"
	if res.Model == Lag {
		stat = "z-Statistic"
	}
	fmt.Fprintf(tw, "Variable\tCoefficient\tStd.Error\t%s\tProbability\t\n", stat)
	for j, name := range res.Names {
		fmt.Fprintf(tw, "%s\t%.7f\t%.7f\t%.7f\t%.7f\t\n",
			name, res.Betas[j], res.StdErr[j], res.ZStat[j], res.PValues[j])
	}
	_ = tw.Flush()

	if d := res.Diagnostics; d != nil {
		sb.WriteString("DIAGNOSTICS\n")
		tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "Test\tDF\tValue\tProb\t\n")
		row := func(name string, t Test) {
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t\n", name, t.DF, t.Statistic, t.PValue)
		}
		row("Koenker-Bassett", d.KoenkerBassett)
		if d.Spatial {
			row("Lagrange Multiplier (lag)", d.LMLag)
			row("Robust LM (lag)", d.RLMLag)
			row("Lagrange Multiplier (error)", d.LMError)
			row("Robust LM (error)", d.RLMError)
		}
		_ = tw.Flush()
	}

	return sb.String()
}
