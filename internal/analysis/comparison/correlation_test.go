package comparison

import (
	"math"
	"testing"

	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpearman(t *testing.T) {
	t.Run("two valid pairs is insufficient", func(t *testing.T) {
		labels := []study.Category{study.ValidCoping, study.InsufficientData, study.NoEffect, study.InsufficientData}
		res, err := Spearman(testDim, labels, []float64{1, 2, 3, 4})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, core.ErrInsufficientPairs)
		assert.True(t, core.IsInsufficientData(err))
	})

	t.Run("three valid pairs", func(t *testing.T) {
		labels := []study.Category{study.ValidCoping, study.InsufficientData, study.NoEffect, study.Counterproductive}
		res, err := Spearman(testDim, labels, []float64{3, 100, 0, -3})
		require.NoError(t, err)
		assert.Equal(t, 3, res.N)
		assert.InDelta(t, 1.0, res.Rho, 1e-12)
		assert.Less(t, res.PValue, 0.001)
		assert.Equal(t, domainstats.P001, res.Significance)
	})

	t.Run("constant labels leave rho undefined", func(t *testing.T) {
		labels := []study.Category{study.NoEffect, study.NoEffect, study.NoEffect}
		res, err := Spearman(testDim, labels, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.True(t, math.IsNaN(res.Rho))
		assert.Equal(t, domainstats.NS, res.Significance)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Spearman(testDim, []study.Category{study.NoEffect}, nil)
		assert.ErrorIs(t, err, core.ErrLengthMismatch)
	})
}

func TestCorrelateDimension(t *testing.T) {
	obs := buildObservations(map[study.Category][]float64{
		study.ValidCoping:       {-5, -4},
		study.NoEffect:          {0, 1},
		study.Counterproductive: {4, 6},
		study.InsufficientData:  {50},
	})

	res, err := CorrelateDimension(obs, testDim)
	require.NoError(t, err)
	assert.Equal(t, 6, res.N)
	assert.Less(t, res.Rho, -0.9)
	assert.Equal(t, testDim, res.Dimension)
}

func TestFrequencies(t *testing.T) {
	obs := buildObservations(map[study.Category][]float64{
		study.ValidCoping:      {-2, -4},
		study.NoEffect:         {1},
		study.InsufficientData: {0},
	})

	rows := Frequencies(obs, testDim)
	require.Len(t, rows, 4)

	assert.Equal(t, study.ValidCoping, rows[0].Category)
	assert.Equal(t, 2, rows[0].Count)
	assert.InDelta(t, 50.0, rows[0].Percent, 1e-12)
	assert.InDelta(t, -3.0, rows[0].MeanDelta, 1e-12)

	assert.Equal(t, study.Counterproductive, rows[2].Category)
	assert.Equal(t, 0, rows[2].Count)
	assert.True(t, math.IsNaN(rows[2].MeanDelta))

	assert.Equal(t, study.InsufficientData, rows[3].Category)
	assert.InDelta(t, 25.0, rows[3].Percent, 1e-12)
}
