package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"stailab/domain/core"
)

// TTestResult holds a Student t statistic.
type TTestResult struct {
	T      float64 `json:"t"`
	DF     float64 `json:"df"`
	PValue float64 `json:"p_value"`
}

// IndependentTTest runs the two-sample Student t-test with pooled variance.
func IndependentTTest(x, y []float64) (TTestResult, error) {
	n1, n2 := len(x), len(y)
	if n1 < 1 || n2 < 1 || n1+n2 < 3 {
		return TTestResult{}, fmt.Errorf("%w: t-test needs n1+n2 >= 3, got %d and %d", ErrSampleTooSmall, n1, n2)
	}

	mean1, mean2 := stat.Mean(x, nil), stat.Mean(y, nil)
	ss1 := sumSquaredDeviations(x, mean1)
	ss2 := sumSquaredDeviations(y, mean2)

	df := float64(n1 + n2 - 2)
	pooled := (ss1 + ss2) / df
	se := math.Sqrt(pooled * (1/float64(n1) + 1/float64(n2)))

	t := degenerateRatio(mean1-mean2, se)
	return TTestResult{T: t, DF: df, PValue: tPValueOrDegenerate(t, df)}, nil
}

// PairedTTest runs the dependent-samples t-test on x - y.
func PairedTTest(x, y []float64) (TTestResult, error) {
	if len(x) != len(y) {
		return TTestResult{}, fmt.Errorf("%w: paired t-test got %d and %d values", core.ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return TTestResult{}, fmt.Errorf("%w: paired t-test needs at least 2 pairs, got %d", ErrSampleTooSmall, n)
	}

	diffs := make([]float64, n)
	for i := range x {
		diffs[i] = x[i] - y[i]
	}
	mean := stat.Mean(diffs, nil)
	sd := math.Sqrt(sumSquaredDeviations(diffs, mean) / float64(n-1))
	se := sd / math.Sqrt(float64(n))

	df := float64(n - 1)
	t := degenerateRatio(mean, se)
	return TTestResult{T: t, DF: df, PValue: tPValueOrDegenerate(t, df)}, nil
}

func sumSquaredDeviations(data []float64, mean float64) float64 {
	ss := 0.0
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	return ss
}

// degenerateRatio divides num by den; a zero denominator yields 0 for a zero
// numerator and a signed infinity otherwise.
func degenerateRatio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	switch {
	case num > 0:
		return math.Inf(1)
	case num < 0:
		return math.Inf(-1)
	default:
		return 0
	}
}

func tPValueOrDegenerate(t, df float64) float64 {
	if math.IsInf(t, 0) {
		return 0
	}
	return TTestPValue(t, df)
}
