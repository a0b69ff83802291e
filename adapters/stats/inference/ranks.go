package inference

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Rank converts values to 1-based ranks, averaging tied positions.
func Rank(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}
		i = j
	}

	return ranks
}

// tieCorrectionSum returns sum(t^3 - t) over tie groups of data.
func tieCorrectionSum(data []float64) float64 {
	counts := make(map[float64]int, len(data))
	for _, v := range data {
		counts[v]++
	}
	sum := 0.0
	for _, t := range counts {
		if t > 1 {
			ft := float64(t)
			sum += ft*ft*ft - ft
		}
	}
	return sum
}

func hasTies(data []float64) bool {
	seen := make(map[float64]struct{}, len(data))
	for _, v := range data {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

func median(data []float64) float64 {
	m, err := stats.Median(data)
	if err != nil {
		return math.NaN()
	}
	return m
}
