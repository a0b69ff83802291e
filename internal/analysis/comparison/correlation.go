package comparison

import (
	"fmt"

	"stailab/adapters/stats/inference"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
)

// minCorrelationPairs is the fewest jointly defined pairs Spearman is attempted on.
const minCorrelationPairs = 3

// Spearman correlates the encoded labels of a dimension with the deltas.
// Sentinel labels are dropped pairwise.
func Spearman(dim study.Dimension, labels []study.Category, deltas []float64) (*domainstats.CorrelationResult, error) {
	if len(labels) != len(deltas) {
		return nil, fmt.Errorf("%w: %d labels, %d deltas", core.ErrLengthMismatch, len(labels), len(deltas))
	}

	xs := make([]float64, 0, len(labels))
	ys := make([]float64, 0, len(labels))
	for i, c := range labels {
		score, ok := c.Score()
		if !ok {
			continue
		}
		xs = append(xs, score)
		ys = append(ys, deltas[i])
	}
	if len(xs) < minCorrelationPairs {
		return nil, core.NewInsufficientPairsError(dim.Column, len(xs))
	}

	res, err := inference.Spearman(xs, ys)
	if err != nil {
		return nil, err
	}
	return &domainstats.CorrelationResult{
		Dimension:    dim,
		N:            res.N,
		Rho:          res.Rho,
		PValue:       res.PValue,
		Significance: domainstats.ClassifySignificance(res.PValue),
	}, nil
}

// CorrelateDimension is Spearman over a dataset's observations.
func CorrelateDimension(observations []study.Observation, dim study.Dimension) (*domainstats.CorrelationResult, error) {
	labels := make([]study.Category, len(observations))
	deltas := make([]float64, len(observations))
	selector := dim.Selector()
	for i, o := range observations {
		labels[i] = selector(o)
		deltas[i] = o.Delta()
	}
	return Spearman(dim, labels, deltas)
}
