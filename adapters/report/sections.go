package report

import (
	"fmt"

	domainstats "stailab/domain/stats"
)

// The console and Markdown renderers share these row builders so both show
// the same numbers.

func overviewRows(p *domainstats.PairedResult) [][]string {
	return [][]string{
		{"Condition A", fmt.Sprint(p.A.N), num(p.A.Mean, 2), num(p.A.SD, 2)},
		{"Condition B", fmt.Sprint(p.B.N), num(p.B.Mean, 2), num(p.B.SD, 2)},
		{"Delta (B - A)", fmt.Sprint(p.Delta.N), num(p.Delta.Mean, 2), num(p.Delta.SD, 2)},
	}
}

var overviewHeader = []string{"", "n", "mean", "sd"}

func normalityRows(p *domainstats.PairedResult) [][]string {
	row := func(name string, n domainstats.NormalityResult) []string {
		return []string{name, num(n.W, 4), num(n.PValue, 4), yesNo(n.Normal)}
	}
	return [][]string{row("Condition A", p.NormalityA), row("Condition B", p.NormalityB)}
}

var normalityHeader = []string{"", "W", "p", "normal"}

func pairedTestRows(p *domainstats.PairedResult) [][]string {
	rows := make([][]string, 0, 2)
	for _, o := range []domainstats.TestOutcome{p.TTest, p.Wilcoxon} {
		df := ""
		if o.Kind == domainstats.TestPairedT {
			df = num(o.DF, 0)
		}
		chosen := ""
		if o.Kind == p.Choice {
			chosen = "recommended"
		}
		rows = append(rows, []string{string(o.Kind), num(o.Statistic, 3), df, num(o.PValue, 4), o.Significance.Marker(), chosen})
	}
	return rows
}

var pairedTestHeader = []string{"test", "statistic", "df", "p", "sig", ""}

func frequencyRows(f domainstats.DimensionFrequencies) [][]string {
	rows := make([][]string, 0, len(f.Rows))
	for _, r := range f.Rows {
		rows = append(rows, []string{r.Category.String(), fmt.Sprint(r.Count), num(r.Percent, 1) + "%", num(r.MeanDelta, 2)})
	}
	return rows
}

var frequencyHeader = []string{"category", "n", "%", "mean delta"}

func groupRows(c *domainstats.ComparisonResult) [][]string {
	rows := make([][]string, 0, len(c.GroupNames))
	for _, g := range c.OrderedGroups() {
		norm := c.Normality[g.Category]
		normal := "n<3"
		if norm.Tested {
			normal = fmt.Sprintf("%s (p=%s)", yesNo(norm.Normal), num(norm.PValue, 3))
		}
		rows = append(rows, []string{
			g.Category.String(), fmt.Sprint(g.N), num(g.Mean, 2), num(g.SD, 2),
			num(g.Median, 2), num(g.Min, 2), num(g.Max, 2), normal,
		})
	}
	return rows
}

var groupHeader = []string{"group", "n", "mean", "sd", "median", "min", "max", "normal"}

func correlationRows(cs []*domainstats.CorrelationResult) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{c.Dimension.Name, fmt.Sprint(c.N), num(c.Rho, 3), num(c.PValue, 4), c.Significance.Marker()})
	}
	return rows
}

var correlationHeader = []string{"element", "n", "rho", "p", "sig"}

func summaryRows(rows []domainstats.SummaryRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Element, fmt.Sprint(r.NGroups), r.GroupNames, num(r.PValue, 4), r.Significance, num(r.EffectSize, 3)})
	}
	return out
}

func leveneLine(c *domainstats.ComparisonResult) string {
	if c.Levene == nil {
		return "Levene: not computed (a group has fewer than 2 values)"
	}
	verdict := "variances differ"
	if c.Levene.EqualVariance {
		verdict = "equal variances"
	}
	return fmt.Sprintf("Levene (median): W = %s, p = %s, %s", num(c.Levene.Statistic, 3), num(c.Levene.PValue, 4), verdict)
}

func effectLine(c *domainstats.ComparisonResult) string {
	return fmt.Sprintf("η² = %s (%s)", num(c.EtaSquared, 3), c.EffectTier)
}
