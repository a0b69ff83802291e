package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ANOVAResult is a one-way analysis of variance with its sums of squares.
type ANOVAResult struct {
	F         float64 `json:"f"`
	DFBetween float64 `json:"df_between"`
	DFWithin  float64 `json:"df_within"`
	PValue    float64 `json:"p_value"`
	SSBetween float64 `json:"ss_between"`
	SSWithin  float64 `json:"ss_within"`
	SSTotal   float64 `json:"ss_total"`
}

// SumsOfSquares partitions the pooled variance of groups into between- and
// within-group components.
func SumsOfSquares(groups ...[]float64) (between, within, total float64) {
	var pooled []float64
	for _, g := range groups {
		pooled = append(pooled, g...)
	}
	if len(pooled) == 0 {
		return 0, 0, 0
	}
	grand := stat.Mean(pooled, nil)
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		m := stat.Mean(g, nil)
		between += float64(len(g)) * (m - grand) * (m - grand)
		within += sumSquaredDeviations(g, m)
	}
	total = sumSquaredDeviations(pooled, grand)
	return between, within, total
}

// OneWayANOVA tests equality of group means. Zero within-group variance gives
// F = 0 (p = 1) when the means coincide and F = +Inf (p = 0) otherwise.
func OneWayANOVA(groups ...[]float64) (ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return ANOVAResult{}, fmt.Errorf("%w: ANOVA needs at least 2 groups, got %d", ErrSampleTooSmall, k)
	}
	n := 0
	for i, g := range groups {
		if len(g) == 0 {
			return ANOVAResult{}, fmt.Errorf("%w: ANOVA group %d is empty", ErrSampleTooSmall, i)
		}
		n += len(g)
	}
	if n <= k {
		return ANOVAResult{}, fmt.Errorf("%w: ANOVA needs more observations (%d) than groups (%d)", ErrSampleTooSmall, n, k)
	}

	ssb, ssw, sst := SumsOfSquares(groups...)
	dfb := float64(k - 1)
	dfw := float64(n - k)

	res := ANOVAResult{DFBetween: dfb, DFWithin: dfw, SSBetween: ssb, SSWithin: ssw, SSTotal: sst}
	res.F = degenerateRatio(ssb/dfb, ssw/dfw)
	if res.F == 0 && ssb == 0 {
		res.PValue = 1
	} else {
		res.PValue = FTestPValue(res.F, dfb, dfw)
	}
	return res, nil
}

// LeveneResult is a median-centred Levene (Brown-Forsythe) test.
type LeveneResult struct {
	W      float64 `json:"w"`
	DF1    float64 `json:"df1"`
	DF2    float64 `json:"df2"`
	PValue float64 `json:"p_value"`
}

// Levene tests equality of variances by running ANOVA on absolute deviations
// from each group's median. Every group needs at least 2 values.
func Levene(groups ...[]float64) (LeveneResult, error) {
	if len(groups) < 2 {
		return LeveneResult{}, fmt.Errorf("%w: Levene needs at least 2 groups", ErrSampleTooSmall)
	}
	deviations := make([][]float64, len(groups))
	for i, g := range groups {
		if len(g) < 2 {
			return LeveneResult{}, fmt.Errorf("%w: Levene group %d has %d values", ErrSampleTooSmall, i, len(g))
		}
		med := median(g)
		dev := make([]float64, len(g))
		for j, v := range g {
			dev[j] = math.Abs(v - med)
		}
		deviations[i] = dev
	}

	a, err := OneWayANOVA(deviations...)
	if err != nil {
		return LeveneResult{}, err
	}
	return LeveneResult{W: a.F, DF1: a.DFBetween, DF2: a.DFWithin, PValue: a.PValue}, nil
}
