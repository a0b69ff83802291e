package comparison

import (
	"math"

	"stailab/adapters/stats/inference"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"

	"github.com/montanaflynn/stats"
)

// Normality thresholds. Group comparisons call a sample normal at p >= alpha,
// the whole-sample paired comparison at p > alpha.
const normalityAlpha = 0.05

// NormalityRule decides normality from a Shapiro-Wilk p-value.
type NormalityRule func(p float64) bool

var (
	groupNormalityRule  NormalityRule = func(p float64) bool { return p >= normalityAlpha }
	pairedNormalityRule NormalityRule = func(p float64) bool { return p > normalityAlpha }
)

func describeGroup(c study.Category, values []float64) domainstats.GroupStats {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	return domainstats.GroupStats{
		Category: c,
		N:        len(values),
		Mean:     mean,
		SD:       sampleSD(values),
		Median:   median,
		Min:      min,
		Max:      max,
	}
}

func describe(values []float64) domainstats.Descriptive {
	mean, err := stats.Mean(values)
	if err != nil {
		mean = math.NaN()
	}
	return domainstats.Descriptive{N: len(values), Mean: mean, SD: sampleSD(values)}
}

// sampleSD uses n-1 and is NaN for fewer than two values.
func sampleSD(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// testNormality runs Shapiro-Wilk when n >= 3. Smaller samples are reported
// untested and non-normal.
func testNormality(values []float64, rule NormalityRule) domainstats.NormalityResult {
	res := domainstats.NormalityResult{N: len(values), W: math.NaN(), PValue: math.NaN()}
	if len(values) < 3 {
		return res
	}
	sw, err := inference.ShapiroWilk(values)
	if err != nil {
		return res
	}
	res.W = sw.W
	res.PValue = sw.PValue
	res.Tested = true
	res.Normal = rule(sw.PValue)
	return res
}
