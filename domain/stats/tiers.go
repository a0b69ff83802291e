package stats

import (
	"fmt"
	"math"
)

// SignificanceTier classifies a two-sided p-value.
type SignificanceTier int

const (
	NS SignificanceTier = iota
	P05
	P01
	P001
)

// Marker returns the asterisk notation used in tables.
func (s SignificanceTier) Marker() string {
	switch s {
	case P001:
		return "***"
	case P01:
		return "**"
	case P05:
		return "*"
	default:
		return "n.s."
	}
}

func (s SignificanceTier) String() string {
	switch s {
	case P001:
		return "P001"
	case P01:
		return "P01"
	case P05:
		return "P05"
	default:
		return "NS"
	}
}

// Significant reports p < 0.05.
func (s SignificanceTier) Significant() bool {
	return s != NS
}

// ClassifySignificance uses strict < at every threshold. NaN is NS.
func ClassifySignificance(p float64) SignificanceTier {
	switch {
	case p < 0.001:
		return P001
	case p < 0.01:
		return P01
	case p < 0.05:
		return P05
	default:
		return NS
	}
}

// EffectTier classifies eta-squared after Cohen (1988).
type EffectTier int

const (
	Negligible EffectTier = iota
	Small
	Medium
	Large
)

func (e EffectTier) String() string {
	switch e {
	case Large:
		return "Large"
	case Medium:
		return "Medium"
	case Small:
		return "Small"
	default:
		return "Negligible"
	}
}

// ClassifyEffect: lower bound of each tier is inclusive (.01 small, .06 medium, .14 large).
func ClassifyEffect(etaSquared float64) EffectTier {
	switch {
	case etaSquared >= 0.14:
		return Large
	case etaSquared >= 0.06:
		return Medium
	case etaSquared >= 0.01:
		return Small
	default:
		return Negligible
	}
}

// FormatPaperP renders a p-value the way journals want it: "p < .001" or "p = .042".
func FormatPaperP(p float64) string {
	if math.IsNaN(p) {
		return "p = n/a"
	}
	if p < 0.001 {
		return "p < .001"
	}
	milli := int(math.Round(p * 1000))
	if milli >= 1000 {
		return "p = 1.000"
	}
	return fmt.Sprintf("p = .%03d", milli)
}

// StatisticText renders the statistic with its degrees of freedom, e.g. "F(2, 6) = 27.000".
func StatisticText(kind TestKind, statistic float64, df []float64) string {
	name := kind.StatisticName()
	switch {
	case len(df) == 1:
		return fmt.Sprintf("%s(%s) = %.3f", name, formatDF(df[0]), statistic)
	case len(df) == 2:
		return fmt.Sprintf("%s(%s, %s) = %.3f", name, formatDF(df[0]), formatDF(df[1]), statistic)
	default:
		return fmt.Sprintf("%s = %.3f", name, statistic)
	}
}

func formatDF(df float64) string {
	if df == math.Trunc(df) {
		return fmt.Sprintf("%d", int(df))
	}
	return fmt.Sprintf("%.2f", df)
}

// PaperLine is the one-line summary for a manuscript, e.g.
// "ANOVA: F(2, 6) = 27.000, p = .001, η² = 0.90 **".
func PaperLine(r *ComparisonResult) string {
	return fmt.Sprintf("%s: %s, %s, η² = %.2f %s",
		r.TestChoice,
		StatisticText(r.TestChoice, r.Statistic, r.DF),
		FormatPaperP(r.PValue),
		r.EtaSquared,
		r.Significance.Marker())
}
