package inference

import (
	"fmt"
)

// KruskalWallisResult is the tie-corrected H statistic.
type KruskalWallisResult struct {
	H      float64 `json:"h"`
	DF     float64 `json:"df"`
	PValue float64 `json:"p_value"`
}

// KruskalWallis runs the rank-based one-way test across groups, referring H
// to a chi-square distribution with k-1 degrees of freedom. When every value
// is identical H is 0 and p is 1.
func KruskalWallis(groups ...[]float64) (KruskalWallisResult, error) {
	k := len(groups)
	if k < 2 {
		return KruskalWallisResult{}, fmt.Errorf("%w: Kruskal-Wallis needs at least 2 groups, got %d", ErrSampleTooSmall, k)
	}

	var pooled []float64
	for i, g := range groups {
		if len(g) == 0 {
			return KruskalWallisResult{}, fmt.Errorf("%w: Kruskal-Wallis group %d is empty", ErrSampleTooSmall, i)
		}
		pooled = append(pooled, g...)
	}
	ranks := Rank(pooled)
	n := float64(len(pooled))
	df := float64(k - 1)

	h := 0.0
	offset := 0
	for _, g := range groups {
		sum := 0.0
		for j := range g {
			sum += ranks[offset+j]
		}
		offset += len(g)
		h += sum * sum / float64(len(g))
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieCorrectionSum(pooled)/(n*n*n-n)
	if correction <= 0 {
		return KruskalWallisResult{H: 0, DF: df, PValue: 1}, nil
	}
	h /= correction

	return KruskalWallisResult{H: h, DF: df, PValue: ChiSquarePValue(h, df)}, nil
}
