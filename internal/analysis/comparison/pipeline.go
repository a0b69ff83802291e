// Package comparison is the adaptive test-selection and effect-size pipeline:
// it groups participants by one label dimension, checks normality, picks the
// appropriate test and grades significance and effect size.
package comparison

import (
	"fmt"

	"stailab/adapters/stats/inference"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
)

// Compare runs the pipeline for one dimension using its own column as selector.
func Compare(observations []study.Observation, dim study.Dimension) (*domainstats.ComparisonResult, error) {
	return CompareWith(observations, dim, dim.Selector())
}

// CompareWith runs the pipeline with an explicit label selector. It returns an
// error wrapping core.ErrInsufficientGroups when fewer than two non-empty groups
// remain after the sentinel is dropped.
func CompareWith(observations []study.Observation, dim study.Dimension, selector study.LabelSelector) (*domainstats.ComparisonResult, error) {
	names, values, excluded := partition(observations, selector)
	if len(names) < 2 {
		return nil, core.NewInsufficientGroupsError(dim.Column, len(names))
	}

	result := &domainstats.ComparisonResult{
		Dimension:  dim,
		Analyzed:   len(observations) - excluded,
		Excluded:   excluded,
		GroupNames: names,
		Groups:     make(map[study.Category]domainstats.GroupStats, len(names)),
		Normality:  make(map[study.Category]domainstats.NormalityResult, len(names)),
		AllNormal:  true,
	}

	groups := make([][]float64, len(names))
	for i, c := range names {
		groups[i] = values[c]
		result.Groups[c] = describeGroup(c, values[c])
		norm := testNormality(values[c], groupNormalityRule)
		result.Normality[c] = norm
		if !norm.Normal {
			result.AllNormal = false
		}
	}

	result.Levene = levene(groups)

	if err := runTest(result, groups); err != nil {
		return nil, fmt.Errorf("dimension %s: %w", dim.Column, err)
	}

	result.Significance = domainstats.ClassifySignificance(result.PValue)
	result.EtaSquared = EtaSquared(groups...)
	result.EffectTier = domainstats.ClassifyEffect(result.EtaSquared)
	return result, nil
}

// partition groups deltas by label in canonical order, omitting empty labels
// and counting sentinel observations.
func partition(observations []study.Observation, selector study.LabelSelector) ([]study.Category, map[study.Category][]float64, int) {
	values := make(map[study.Category][]float64, len(study.CanonicalOrder))
	excluded := 0
	for _, o := range observations {
		c := selector(o)
		if c.IsSentinel() {
			excluded++
			continue
		}
		values[c] = append(values[c], o.Delta())
	}

	names := make([]study.Category, 0, len(study.CanonicalOrder))
	for _, c := range study.CanonicalOrder {
		if len(values[c]) > 0 {
			names = append(names, c)
		}
	}
	return names, values, excluded
}

// selectTest is the decision table: group count by joint normality.
func selectTest(groups int, allNormal bool) domainstats.TestKind {
	switch {
	case groups == 2 && allNormal:
		return domainstats.TestTTest
	case groups == 2:
		return domainstats.TestMannWhitneyU
	case allNormal:
		return domainstats.TestANOVA
	default:
		return domainstats.TestKruskalWallis
	}
}

func runTest(result *domainstats.ComparisonResult, groups [][]float64) error {
	result.TestChoice = selectTest(len(groups), result.AllNormal)

	switch result.TestChoice {
	case domainstats.TestTTest:
		res, err := inference.IndependentTTest(groups[0], groups[1])
		if err != nil {
			return err
		}
		result.Statistic, result.PValue = res.T, res.PValue
		result.DF = []float64{res.DF}
	case domainstats.TestMannWhitneyU:
		res, err := inference.MannWhitneyU(groups[0], groups[1])
		if err != nil {
			return err
		}
		result.Statistic, result.PValue = res.U, res.PValue
	case domainstats.TestANOVA:
		res, err := inference.OneWayANOVA(groups...)
		if err != nil {
			return err
		}
		result.Statistic, result.PValue = res.F, res.PValue
		result.DF = []float64{res.DFBetween, res.DFWithin}
	case domainstats.TestKruskalWallis:
		res, err := inference.KruskalWallis(groups...)
		if err != nil {
			return err
		}
		result.Statistic, result.PValue = res.H, res.PValue
		result.DF = []float64{res.DF}
	}
	return nil
}

// levene is reported only when every group has at least two values.
func levene(groups [][]float64) *domainstats.LeveneResult {
	res, err := inference.Levene(groups...)
	if err != nil {
		return nil
	}
	return &domainstats.LeveneResult{
		Statistic:     res.W,
		PValue:        res.PValue,
		EqualVariance: res.PValue >= normalityAlpha,
	}
}
