// Package inference implements the hypothesis tests behind the group comparison
// pipeline. Every function is a pure computation over its arguments.
package inference

import (
	"fmt"
	"math"

	"stailab/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSampleTooSmall is returned when a test cannot run on the given sample sizes.
var ErrSampleTooSmall = fmt.Errorf("%w: sample too small", core.ErrInsufficientData)

// TTestPValue computes the two-tailed p-value for a t statistic.
func TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(tStatistic) {
		return math.NaN()
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return clampProbability(2 * tDist.Survival(math.Abs(tStatistic)))
}

// FTestPValue computes the upper-tail p-value for an F statistic (ANOVA, Levene).
func FTestPValue(fStatistic float64, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(fStatistic) {
		return math.NaN()
	}
	if math.IsInf(fStatistic, 1) {
		return 0
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return fDist.Survival(fStatistic)
}

// ChiSquarePValue computes the upper-tail p-value for a chi-square statistic.
func ChiSquarePValue(chiSquare float64, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(chiSquare) {
		return math.NaN()
	}
	chiDist := distuv.ChiSquared{K: degreesOfFreedom}
	return chiDist.Survival(chiSquare)
}

// NormalTwoSidedPValue is 2 * P(Z > |z|).
func NormalTwoSidedPValue(z float64) float64 {
	return clampProbability(2 * distuv.UnitNormal.Survival(math.Abs(z)))
}

// CorrelationPValue computes the two-tailed p-value of a correlation coefficient
// through its t transform with n-2 degrees of freedom.
func CorrelationPValue(correlation float64, sampleSize int) float64 {
	if sampleSize < 3 || math.IsNaN(correlation) {
		return math.NaN()
	}
	if math.Abs(correlation) >= 1 {
		return 0
	}
	df := float64(sampleSize - 2)
	tStatistic := correlation * math.Sqrt(df/(1-correlation*correlation))
	return TTestPValue(tStatistic, df)
}

// wilcoxonSignedRankExactLowerTail returns P(W+ <= w) for n untied, non-zero differences.
func wilcoxonSignedRankExactLowerTail(w float64, n int) float64 {
	wObs := int(math.Floor(w + 1e-9))
	if wObs < 0 {
		return 0
	}

	totalRankSum := n * (n + 1) / 2
	if wObs >= totalRankSum {
		return 1
	}

	// dp[s] = number of sign assignments producing W+ = s.
	dp := make([]float64, totalRankSum+1)
	dp[0] = 1
	for r := 1; r <= n; r++ {
		for s := totalRankSum; s >= r; s-- {
			dp[s] += dp[s-r]
		}
	}

	var cum float64
	for s := 0; s <= wObs; s++ {
		cum += dp[s]
	}
	return cum / math.Pow(2, float64(n))
}

// mannWhitneyExactUpperTail returns P(U >= u) under H0 for sample sizes n1, n2 without ties.
func mannWhitneyExactUpperTail(u float64, n1, n2 int) float64 {
	maxU := n1 * n2
	// counts[i][j] holds the frequency table of U for sizes (i, j), built bottom-up.
	counts := make([][][]float64, n1+1)
	for i := 0; i <= n1; i++ {
		counts[i] = make([][]float64, n2+1)
		for j := 0; j <= n2; j++ {
			table := make([]float64, i*j+1)
			switch {
			case i == 0 || j == 0:
				table[0] = 1
			default:
				// the largest observation belongs to sample 1 (adds j) or sample 2 (adds 0)
				for k, c := range counts[i-1][j] {
					table[k+j] += c
				}
				for k, c := range counts[i][j-1] {
					table[k] += c
				}
			}
			counts[i][j] = table
		}
	}

	table := counts[n1][n2]
	var total, upper float64
	threshold := int(math.Ceil(u - 1e-9))
	for k := 0; k <= maxU; k++ {
		total += table[k]
		if k >= threshold {
			upper += table[k]
		}
	}
	return upper / total
}

func clampProbability(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func normalSurvival(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}
