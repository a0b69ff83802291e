package inference

import (
	"fmt"
	"math"

	"stailab/domain/core"
)

// exact null distribution is used up to this many non-zero differences
const wilcoxonExactLimit = 50

// WilcoxonResult reports W = min(W+, W-) over the non-zero differences.
type WilcoxonResult struct {
	W       float64 `json:"w"`
	N       int     `json:"n"`
	PValue  float64 `json:"p_value"`
	Exact   bool    `json:"exact"`
	Dropped int     `json:"zeros_dropped"`
}

// WilcoxonSignedRank runs the two-sided signed-rank test on x - y. Zero
// differences are discarded. Small samples without ties or zeros use the exact
// distribution, otherwise a tie-corrected normal approximation.
func WilcoxonSignedRank(x, y []float64) (WilcoxonResult, error) {
	if len(x) != len(y) {
		return WilcoxonResult{}, fmt.Errorf("%w: Wilcoxon got %d and %d values", core.ErrLengthMismatch, len(x), len(y))
	}

	diffs := make([]float64, 0, len(x))
	for i := range x {
		if d := x[i] - y[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	dropped := len(x) - len(diffs)
	n := len(diffs)
	if n == 0 {
		if len(x) == 0 {
			return WilcoxonResult{}, fmt.Errorf("%w: Wilcoxon needs at least one pair", ErrSampleTooSmall)
		}
		return WilcoxonResult{W: 0, N: 0, PValue: 1, Dropped: dropped}, nil
	}

	abs := make([]float64, n)
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	ranks := Rank(abs)

	var wPlus, wMinus float64
	for i, d := range diffs {
		if d > 0 {
			wPlus += ranks[i]
		} else {
			wMinus += ranks[i]
		}
	}
	w := math.Min(wPlus, wMinus)
	res := WilcoxonResult{W: w, N: n, Dropped: dropped}

	if n <= wilcoxonExactLimit && dropped == 0 && !hasTies(abs) {
		res.Exact = true
		res.PValue = clampProbability(2 * wilcoxonSignedRankExactLowerTail(w, n))
		return res, nil
	}

	fn := float64(n)
	mean := fn * (fn + 1) / 4
	variance := fn*(fn+1)*(2*fn+1)/24 - tieCorrectionSum(abs)/48
	if variance <= 0 {
		res.PValue = 1
		return res, nil
	}
	res.PValue = NormalTwoSidedPValue((w - mean) / math.Sqrt(variance))
	return res, nil
}
