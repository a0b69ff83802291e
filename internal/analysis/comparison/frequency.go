package comparison

import (
	"math"

	domainstats "stailab/domain/stats"
	"stailab/domain/study"

	"github.com/montanaflynn/stats"
)

// Frequencies counts every category of a dimension, the sentinel included,
// with the mean delta of each non-empty category.
func Frequencies(observations []study.Observation, dim study.Dimension) []domainstats.FrequencyRow {
	selector := dim.Selector()
	byCategory := make(map[study.Category][]float64, len(study.AllCategories))
	for _, o := range observations {
		c := selector(o)
		byCategory[c] = append(byCategory[c], o.Delta())
	}

	total := float64(len(observations))
	rows := make([]domainstats.FrequencyRow, 0, len(study.AllCategories))
	for _, c := range study.AllCategories {
		values := byCategory[c]
		row := domainstats.FrequencyRow{Category: c, Count: len(values), MeanDelta: math.NaN()}
		if total > 0 {
			row.Percent = float64(len(values)) / total * 100
		}
		if len(values) > 0 {
			row.MeanDelta, _ = stats.Mean(values)
		}
		rows = append(rows, row)
	}
	return rows
}
