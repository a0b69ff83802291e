package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"stailab/domain/core"
)

// SpearmanResult is a rank correlation with its t-approximated p-value.
type SpearmanResult struct {
	Rho    float64 `json:"rho"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// Spearman computes Pearson's correlation of the average ranks of x and y.
// A constant input leaves rho undefined (NaN).
func Spearman(x, y []float64) (SpearmanResult, error) {
	if len(x) != len(y) {
		return SpearmanResult{}, fmt.Errorf("%w: Spearman got %d and %d values", core.ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return SpearmanResult{N: n}, fmt.Errorf("%w: Spearman needs at least 3 pairs, got %d", ErrSampleTooSmall, n)
	}

	rx, ry := Rank(x), Rank(y)
	if isConstant(rx) || isConstant(ry) {
		return SpearmanResult{Rho: math.NaN(), PValue: math.NaN(), N: n}, nil
	}
	rho := stat.Correlation(rx, ry, nil)
	return SpearmanResult{Rho: rho, PValue: CorrelationPValue(rho, n), N: n}, nil
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}
