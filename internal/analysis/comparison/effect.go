package comparison

import (
	"stailab/adapters/stats/inference"
)

// EtaSquared is SS_between / SS_total over the pooled values of all groups.
// It is 0 when every value is identical.
func EtaSquared(groups ...[]float64) float64 {
	if allIdentical(groups) {
		return 0
	}
	between, _, total := inference.SumsOfSquares(groups...)
	if total == 0 {
		return 0
	}
	eta := between / total
	if eta > 1 {
		return 1
	}
	if eta < 0 {
		return 0
	}
	return eta
}

func allIdentical(groups [][]float64) bool {
	first, seen := 0.0, false
	for _, g := range groups {
		for _, v := range g {
			if !seen {
				first, seen = v, true
				continue
			}
			if v != first {
				return false
			}
		}
	}
	return true
}
