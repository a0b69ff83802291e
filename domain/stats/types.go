package stats

import (
	"math"
	"strings"

	"stailab/domain/study"
)

// ============================================================================
// TEST KINDS
// ============================================================================

// TestKind names the hypothesis test a result came from.
type TestKind string

const (
	TestTTest         TestKind = "t-test"
	TestMannWhitneyU  TestKind = "Mann-Whitney U"
	TestANOVA         TestKind = "ANOVA"
	TestKruskalWallis TestKind = "Kruskal-Wallis"
	TestPairedT       TestKind = "paired t-test"
	TestWilcoxon      TestKind = "Wilcoxon signed-rank"
)

// StatisticName is the conventional symbol for the test statistic.
func (k TestKind) StatisticName() string {
	switch k {
	case TestTTest, TestPairedT:
		return "t"
	case TestMannWhitneyU:
		return "U"
	case TestANOVA:
		return "F"
	case TestKruskalWallis:
		return "H"
	case TestWilcoxon:
		return "W"
	default:
		return "?"
	}
}

// Parametric reports whether the test assumes normality.
func (k TestKind) Parametric() bool {
	return k == TestTTest || k == TestANOVA || k == TestPairedT
}

// ============================================================================
// PER-GROUP RESULTS
// ============================================================================

// GroupStats holds the descriptives of one group of deltas.
// SD is NaN when N == 1.
type GroupStats struct {
	Category study.Category `json:"category"`
	N        int            `json:"n"`
	Mean     float64        `json:"mean"`
	SD       float64        `json:"sd"`
	Median   float64        `json:"median"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
}

// SDDefined reports whether the sample standard deviation exists (n >= 2).
func (g GroupStats) SDDefined() bool {
	return !math.IsNaN(g.SD)
}

// NormalityResult is the Shapiro-Wilk outcome for one sample.
// Tested is false when n < 3; Normal is then false by policy.
type NormalityResult struct {
	N      int     `json:"n"`
	W      float64 `json:"w"`
	PValue float64 `json:"p_value"`
	Tested bool    `json:"tested"`
	Normal bool    `json:"normal"`
}

// LeveneResult is informational only; it never changes the test choice.
type LeveneResult struct {
	Statistic     float64 `json:"statistic"`
	PValue        float64 `json:"p_value"`
	EqualVariance bool    `json:"equal_variance"`
}

// ============================================================================
// COMPARISON RESULT
// ============================================================================

// ComparisonResult is the write-once outcome of comparing the groups of one label dimension.
type ComparisonResult struct {
	Dimension    study.Dimension                    `json:"dimension"`
	Analyzed     int                                `json:"analyzed"` // observations left after sentinel exclusion
	Excluded     int                                `json:"excluded"` // sentinel observations
	GroupNames   []study.Category                   `json:"group_names"`
	Groups       map[study.Category]GroupStats      `json:"groups"`
	Normality    map[study.Category]NormalityResult `json:"normality"`
	AllNormal    bool                               `json:"all_normal"`
	Levene       *LeveneResult                      `json:"levene,omitempty"`
	TestChoice   TestKind                           `json:"test_choice"`
	Statistic    float64                            `json:"statistic"`
	DF           []float64                          `json:"df,omitempty"` // t: [df]; F: [between, within]
	PValue       float64                            `json:"p_value"`
	Significance SignificanceTier                   `json:"significance"`
	EtaSquared   float64                            `json:"eta_squared"`
	EffectTier   EffectTier                         `json:"effect_tier"`
}

// OrderedGroups returns group stats in group order.
func (r *ComparisonResult) OrderedGroups() []GroupStats {
	out := make([]GroupStats, 0, len(r.GroupNames))
	for _, c := range r.GroupNames {
		out = append(out, r.Groups[c])
	}
	return out
}

// ============================================================================
// PAIRED RESULT
// ============================================================================

// Descriptive is a mean/SD pair for one condition.
type Descriptive struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// TestOutcome is one test's statistic, p-value and tier.
type TestOutcome struct {
	Kind         TestKind         `json:"kind"`
	Statistic    float64          `json:"statistic"`
	DF           float64          `json:"df,omitempty"`
	PValue       float64          `json:"p_value"`
	Significance SignificanceTier `json:"significance"`
}

// PairedResult is the whole-sample condition A vs condition B comparison.
// Both tests are always computed; Choice names the one selected by normality.
type PairedResult struct {
	N          int             `json:"n"`
	A          Descriptive     `json:"a"`
	B          Descriptive     `json:"b"`
	Delta      Descriptive     `json:"delta"` // B - A
	NormalityA NormalityResult `json:"normality_a"`
	NormalityB NormalityResult `json:"normality_b"`
	BothNormal bool            `json:"both_normal"`
	Choice     TestKind        `json:"choice"`
	TTest      TestOutcome     `json:"t_test"`
	Wilcoxon   TestOutcome     `json:"wilcoxon"`
	MeanDiff   float64         `json:"mean_diff"` // mean(A - B)
	SDDiff     float64         `json:"sd_diff"`   // sd(A - B)
	CohensD    float64         `json:"cohens_d"`  // MeanDiff / SDDiff, NaN when undefined
}

// Selected returns the outcome of the chosen test.
func (r *PairedResult) Selected() TestOutcome {
	if r.Choice == TestPairedT {
		return r.TTest
	}
	return r.Wilcoxon
}

// ============================================================================
// CORRELATION + FREQUENCIES
// ============================================================================

// CorrelationResult is Spearman's rho between an encoded label and the delta.
type CorrelationResult struct {
	Dimension    study.Dimension  `json:"dimension"`
	N            int              `json:"n"`
	Rho          float64          `json:"rho"`
	PValue       float64          `json:"p_value"`
	Significance SignificanceTier `json:"significance"`
}

// FrequencyRow counts one category of a dimension over all participants.
// MeanDelta is NaN when Count is 0.
type FrequencyRow struct {
	Category  study.Category `json:"category"`
	Count     int            `json:"count"`
	Percent   float64        `json:"percent"`
	MeanDelta float64        `json:"mean_delta"`
}

// ============================================================================
// SUMMARY TABLE
// ============================================================================

// SummaryHeader is the column order of the summary table.
var SummaryHeader = []string{"Element", "n_groups", "group_names", "p_value", "significance", "effect_size"}

// SummaryRow is one compared dimension in the summary table.
type SummaryRow struct {
	Element      string  `json:"element"`
	NGroups      int     `json:"n_groups"`
	GroupNames   string  `json:"group_names"`
	PValue       float64 `json:"p_value"`
	Significance string  `json:"significance"`
	EffectSize   float64 `json:"effect_size"`
}

// NewSummaryRow flattens a comparison; group names are joined with ", ".
func NewSummaryRow(r *ComparisonResult) SummaryRow {
	names := make([]string, len(r.GroupNames))
	for i, c := range r.GroupNames {
		names[i] = c.String()
	}
	return SummaryRow{
		Element:      r.Dimension.Name,
		NGroups:      len(r.GroupNames),
		GroupNames:   strings.Join(names, ", "),
		PValue:       r.PValue,
		Significance: r.Significance.Marker(),
		EffectSize:   r.EtaSquared,
	}
}
