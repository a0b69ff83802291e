package inference

import (
	"fmt"
	"math"
)

// exact distribution is used only when neither sample exceeds this size
const mannWhitneyExactLimit = 8

// MannWhitneyResult reports U for the first sample.
type MannWhitneyResult struct {
	U      float64 `json:"u"`
	PValue float64 `json:"p_value"`
	Exact  bool    `json:"exact"`
}

// MannWhitneyU runs the two-sided Mann-Whitney U test. The exact null
// distribution is used for small untied samples; otherwise the normal
// approximation with tie and continuity correction.
func MannWhitneyU(x, y []float64) (MannWhitneyResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return MannWhitneyResult{}, fmt.Errorf("%w: Mann-Whitney needs two non-empty samples", ErrSampleTooSmall)
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks := Rank(pooled)

	r1 := 0.0
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	fn1, fn2 := float64(n1), float64(n2)
	u1 := r1 - fn1*(fn1+1)/2
	u2 := fn1*fn2 - u1
	uMax := math.Max(u1, u2)

	if !hasTies(pooled) && (n1 <= mannWhitneyExactLimit || n2 <= mannWhitneyExactLimit) {
		p := 2 * mannWhitneyExactUpperTail(uMax, n1, n2)
		return MannWhitneyResult{U: u1, PValue: clampProbability(p), Exact: true}, nil
	}

	n := fn1 + fn2
	mu := fn1 * fn2 / 2
	tie := tieCorrectionSum(pooled)
	sigma := math.Sqrt(fn1 * fn2 / 12 * ((n + 1) - tie/(n*(n-1))))
	if sigma == 0 {
		return MannWhitneyResult{U: u1, PValue: 1}, nil
	}
	z := (uMax - mu - 0.5) / sigma
	p := 2 * normalSurvival(z)
	return MannWhitneyResult{U: u1, PValue: clampProbability(p)}, nil
}
