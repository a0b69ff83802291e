package comparison

import (
	"fmt"
	"math"

	"stailab/adapters/stats/inference"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
)

// ComparePaired compares condition A with condition B over the whole sample.
// Both the paired t-test and the Wilcoxon signed-rank test are computed;
// Choice is the t-test only when both conditions pass Shapiro-Wilk.
func ComparePaired(a, b []float64) (*domainstats.PairedResult, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: condition A has %d scores, condition B has %d", core.ErrLengthMismatch, len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return nil, core.NewInsufficientPairsError("paired", n)
	}

	deltas := make([]float64, n) // B - A
	diffs := make([]float64, n)  // A - B
	for i := range a {
		deltas[i] = b[i] - a[i]
		diffs[i] = a[i] - b[i]
	}

	result := &domainstats.PairedResult{
		N:          n,
		A:          describe(a),
		B:          describe(b),
		Delta:      describe(deltas),
		NormalityA: testNormality(a, pairedNormalityRule),
		NormalityB: testNormality(b, pairedNormalityRule),
	}
	result.BothNormal = result.NormalityA.Normal && result.NormalityB.Normal
	if result.BothNormal {
		result.Choice = domainstats.TestPairedT
	} else {
		result.Choice = domainstats.TestWilcoxon
	}

	tt, err := inference.PairedTTest(a, b)
	if err != nil {
		return nil, err
	}
	result.TTest = domainstats.TestOutcome{
		Kind:         domainstats.TestPairedT,
		Statistic:    tt.T,
		DF:           tt.DF,
		PValue:       tt.PValue,
		Significance: domainstats.ClassifySignificance(tt.PValue),
	}

	wx, err := inference.WilcoxonSignedRank(a, b)
	if err != nil {
		return nil, err
	}
	result.Wilcoxon = domainstats.TestOutcome{
		Kind:         domainstats.TestWilcoxon,
		Statistic:    wx.W,
		PValue:       wx.PValue,
		Significance: domainstats.ClassifySignificance(wx.PValue),
	}

	diff := describe(diffs)
	result.MeanDiff = diff.Mean
	result.SDDiff = diff.SD
	result.CohensD = cohensD(diff.Mean, diff.SD)
	return result, nil
}

// cohensD for paired samples; undefined (NaN) when the differences do not vary.
func cohensD(meanDiff, sdDiff float64) float64 {
	if math.IsNaN(sdDiff) || sdDiff == 0 {
		return math.NaN()
	}
	return meanDiff / sdDiff
}
