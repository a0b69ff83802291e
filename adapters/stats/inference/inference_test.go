package inference

import (
	"errors"
	"math"
	"testing"

	"stailab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapiroWilk(t *testing.T) {
	t.Run("n=3 exact branch", func(t *testing.T) {
		res, err := ShapiroWilk([]float64{1, 2, 10})
		require.NoError(t, err)
		assert.InDelta(t, 0.832192, res.W, 1e-5)
		assert.InDelta(t, 0.193918, res.PValue, 1e-5)
	})

	t.Run("evenly spaced triple is perfectly normal", func(t *testing.T) {
		res, err := ShapiroWilk([]float64{2, 3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, res.W, 1e-9)
		assert.InDelta(t, 1.0, res.PValue, 1e-6)
	})

	t.Run("constant input", func(t *testing.T) {
		res, err := ShapiroWilk([]float64{5, 5, 5, 5})
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.W)
		assert.Equal(t, 1.0, res.PValue)
	})

	t.Run("skewed small sample", func(t *testing.T) {
		res, err := ShapiroWilk([]float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236})
		require.NoError(t, err)
		assert.InDelta(t, 0.7888, res.W, 1e-3)
		assert.InDelta(t, 0.0067, res.PValue, 1e-3)
	})

	t.Run("roughly normal sample", func(t *testing.T) {
		res, err := ShapiroWilk([]float64{2.1, 3.4, 1.9, 5.6, 4.4, 3.8, 2.9, 4.1, 3.3, 3.0})
		require.NoError(t, err)
		assert.InDelta(t, 0.9691, res.W, 1e-3)
		assert.Greater(t, res.PValue, 0.5)
	})

	t.Run("large sample with outlier", func(t *testing.T) {
		data := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 50}
		res, err := ShapiroWilk(data)
		require.NoError(t, err)
		assert.Less(t, res.PValue, 0.001)
	})

	t.Run("too small", func(t *testing.T) {
		_, err := ShapiroWilk([]float64{1, 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInsufficientData))
	})
}

func TestIndependentTTest(t *testing.T) {
	res, err := IndependentTTest([]float64{2, 1, 3, 4}, []float64{6, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, -3.9703446152237674, res.T, 1e-9)
	assert.Equal(t, 6.0, res.DF)
	assert.InDelta(t, 0.0073640592242113214, res.PValue, 1e-9)

	t.Run("zero variance equal means", func(t *testing.T) {
		res, err := IndependentTTest([]float64{1, 1}, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.T)
		assert.Equal(t, 1.0, res.PValue)
	})

	t.Run("zero variance different means", func(t *testing.T) {
		res, err := IndependentTTest([]float64{1, 1}, []float64{2, 2})
		require.NoError(t, err)
		assert.True(t, math.IsInf(res.T, -1))
		assert.Equal(t, 0.0, res.PValue)
	})
}

func TestPairedTTest(t *testing.T) {
	res, err := PairedTTest([]float64{2, 1, 3, 4}, []float64{6, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, -17.0, res.T, 1e-9)
	assert.Equal(t, 3.0, res.DF)
	assert.InDelta(t, 0.00044334353831207749, res.PValue, 1e-9)

	_, err = PairedTTest([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

func TestMannWhitneyU(t *testing.T) {
	t.Run("exact fully separated 2x2", func(t *testing.T) {
		res, err := MannWhitneyU([]float64{3, 4}, []float64{1, 2})
		require.NoError(t, err)
		assert.True(t, res.Exact)
		assert.Equal(t, 4.0, res.U)
		assert.InDelta(t, 1.0/3.0, res.PValue, 1e-12)
	})

	t.Run("exact distribution is symmetric", func(t *testing.T) {
		a, err := MannWhitneyU([]float64{1, 2}, []float64{3, 4})
		require.NoError(t, err)
		b, err := MannWhitneyU([]float64{3, 4}, []float64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, a.U)
		assert.InDelta(t, a.PValue, b.PValue, 1e-12)
	})

	t.Run("asymptotic for large untied samples", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
		y := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18}
		res, err := MannWhitneyU(x, y)
		require.NoError(t, err)
		assert.False(t, res.Exact)
		assert.Equal(t, 0.0, res.U)
		assert.InDelta(t, 0.000412295, res.PValue, 1e-8)
	})

	t.Run("all tied", func(t *testing.T) {
		res, err := MannWhitneyU([]float64{1, 1}, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.PValue)
	})
}

func TestExactTables(t *testing.T) {
	// sizes (2,2): U takes 0..4 with counts 1,1,2,1,1
	assert.InDelta(t, 1.0/6.0, mannWhitneyExactUpperTail(4, 2, 2), 1e-12)
	assert.InDelta(t, 2.0/6.0, mannWhitneyExactUpperTail(3, 2, 2), 1e-12)
	assert.InDelta(t, 4.0/6.0, mannWhitneyExactUpperTail(2, 2, 2), 1e-12)
	assert.InDelta(t, 1.0, mannWhitneyExactUpperTail(0, 2, 2), 1e-12)

	assert.InDelta(t, 1.0/32.0, wilcoxonSignedRankExactLowerTail(0, 5), 1e-12)
	assert.InDelta(t, 2.0/32.0, wilcoxonSignedRankExactLowerTail(1, 5), 1e-12)
	assert.Equal(t, 1.0, wilcoxonSignedRankExactLowerTail(15, 5))
}

func TestOneWayANOVA(t *testing.T) {
	res, err := OneWayANOVA([]float64{2, 3, 4}, []float64{0, 1, -1}, []float64{-3, -2, -4})
	require.NoError(t, err)
	assert.InDelta(t, 27.0, res.F, 1e-9)
	assert.Equal(t, 2.0, res.DFBetween)
	assert.Equal(t, 6.0, res.DFWithin)
	assert.InDelta(t, 0.001, res.PValue, 1e-9)
	assert.InDelta(t, 54.0, res.SSBetween, 1e-9)
	assert.InDelta(t, 6.0, res.SSWithin, 1e-9)
	assert.InDelta(t, 60.0, res.SSTotal, 1e-9)

	t.Run("identical groups", func(t *testing.T) {
		res, err := OneWayANOVA([]float64{1, 1}, []float64{1, 1}, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.F)
		assert.Equal(t, 1.0, res.PValue)
	})

	t.Run("needs more observations than groups", func(t *testing.T) {
		_, err := OneWayANOVA([]float64{1}, []float64{2})
		assert.ErrorIs(t, err, ErrSampleTooSmall)
	})
}

func TestLevene(t *testing.T) {
	res, err := Levene([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 2.4, res.W, 1e-9)
	assert.InDelta(t, 0.172308, res.PValue, 1e-5)

	_, err = Levene([]float64{1, 2}, []float64{3})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestKruskalWallis(t *testing.T) {
	res, err := KruskalWallis([]float64{1, 2, 3}, []float64{4, 5, 6}, []float64{7, 8, 9})
	require.NoError(t, err)
	assert.InDelta(t, 7.2, res.H, 1e-9)
	assert.Equal(t, 2.0, res.DF)
	assert.InDelta(t, math.Exp(-3.6), res.PValue, 1e-9)

	t.Run("all identical", func(t *testing.T) {
		res, err := KruskalWallis([]float64{3, 3}, []float64{3}, []float64{3, 3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.H)
		assert.Equal(t, 1.0, res.PValue)
	})

	t.Run("ties raise H", func(t *testing.T) {
		plain, err := KruskalWallis([]float64{1, 2}, []float64{3, 4})
		require.NoError(t, err)
		tied, err := KruskalWallis([]float64{1, 1}, []float64{2, 2})
		require.NoError(t, err)
		assert.Greater(t, tied.H, plain.H)
	})
}

func TestWilcoxonSignedRank(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		res, err := WilcoxonSignedRank([]float64{2, 4, 6, 8, 10}, []float64{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.True(t, res.Exact)
		assert.Equal(t, 0.0, res.W)
		assert.InDelta(t, 0.0625, res.PValue, 1e-12)
	})

	t.Run("zeros dropped forces normal approximation", func(t *testing.T) {
		res, err := WilcoxonSignedRank([]float64{2, 4, 6, 8, 10, 3}, []float64{1, 2, 3, 4, 5, 3})
		require.NoError(t, err)
		assert.False(t, res.Exact)
		assert.Equal(t, 1, res.Dropped)
		assert.Equal(t, 5, res.N)
		// z = (0 - 7.5) / sqrt(13.75)
		assert.InDelta(t, 0.043114, res.PValue, 1e-5)
	})

	t.Run("all differences zero", func(t *testing.T) {
		res, err := WilcoxonSignedRank([]float64{1, 2, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.W)
		assert.Equal(t, 1.0, res.PValue)
	})
}

func TestSpearman(t *testing.T) {
	res, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{2, 1, 4, 3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, res.Rho, 1e-12)
	assert.InDelta(t, 0.104088, res.PValue, 1e-5)

	perfect, err := Spearman([]float64{1, 2, 3}, []float64{10, 20, 40})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, perfect.Rho, 1e-12)

	constant, err := Spearman([]float64{1, 1, 1}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(constant.Rho))

	_, err = Spearman([]float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestRank(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, Rank([]float64{1, 5, 5, 9}))
	assert.Equal(t, []float64{3, 1, 2}, Rank([]float64{30, 10, 20}))
	assert.Empty(t, Rank(nil))
	assert.Equal(t, 6.0, tieCorrectionSum([]float64{1, 5, 5, 9}))
}
