package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"stailab/adapters/chart"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
	"stailab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChartRenderer struct {
	mock.Mock
}

func (m *mockChartRenderer) Render(cmp *domainstats.ComparisonResult, observations []study.Observation) (string, error) {
	args := m.Called(cmp.Dimension.Column, len(observations))
	return args.String(0), args.Error(1)
}

func testDataset() *study.Dataset {
	dims := study.DefaultDimensions
	type row struct {
		a, b   float64
		labels [3]study.Category
	}
	vc, ne, cp, id := study.ValidCoping, study.NoEffect, study.Counterproductive, study.InsufficientData
	rows := []row{
		{40, 42, [3]study.Category{vc, vc, vc}},
		{38, 41, [3]study.Category{vc, vc, ne}},
		{45, 49, [3]study.Category{vc, id, vc}},
		{50, 50, [3]study.Category{ne, vc, ne}},
		{36, 37, [3]study.Category{ne, id, vc}},
		{44, 43, [3]study.Category{ne, vc, ne}},
		{41, 38, [3]study.Category{cp, id, vc}},
		{47, 45, [3]study.Category{cp, vc, ne}},
		{39, 35, [3]study.Category{cp, id, id}},
	}

	ds := &study.Dataset{Source: "memory", Fingerprint: core.NewHash([]byte("memory")), Dimensions: dims, DroppedRows: 1}
	for _, r := range rows {
		labels := map[string]study.Category{}
		for i, d := range dims {
			labels[d.Column] = r.labels[i]
		}
		ds.Observations = append(ds.Observations, study.NewObservation("", r.a, r.b, labels))
	}
	return ds
}

func TestAnalysisService_Analyze(t *testing.T) {
	svc := NewAnalysisService(AnalysisOptions{OutputDir: t.TempDir(), Workers: 2})

	rep, err := svc.Analyze(context.Background(), testDataset())
	require.NoError(t, err)

	assert.False(t, rep.RunID == "")
	assert.Equal(t, 9, rep.Participants)
	assert.Equal(t, 1, rep.DroppedRows)
	require.NotNil(t, rep.Paired)
	assert.Equal(t, 9, rep.Paired.N)
	require.Len(t, rep.Frequencies, 3)

	// Element2 has only ValidCoping left after exclusions.
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, "Element2_Burden", rep.Skipped[0].Dimension.Column)

	require.Len(t, rep.Comparisons, 2)
	assert.Equal(t, "Element1_Obligation", rep.Comparisons[0].Dimension.Column)
	assert.Equal(t, "Element3_Rejection", rep.Comparisons[1].Dimension.Column)
	assert.Len(t, rep.Comparisons[0].GroupNames, 3)
	assert.Equal(t, 1, rep.Comparisons[1].Excluded)

	// The constant labels of Element2 leave rho undefined but the correlation still runs.
	assert.Len(t, rep.Correlations, 3)
	assert.Empty(t, rep.Charts)
}

func TestAnalysisService_RunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	charts := &mockChartRenderer{}
	charts.On("Render", "Element1_Obligation", 9).Return(filepath.Join(dir, "element1_group_comparison.png"), nil)
	charts.On("Render", "Element3_Rejection", 9).Return(filepath.Join(dir, "element3_group_comparison.png"), nil)

	svc := NewAnalysisService(AnalysisOptions{OutputDir: dir, Workers: 3, Markdown: true, HTML: true, Charts: charts})
	rep, err := svc.Run(context.Background(), testDataset())
	require.NoError(t, err)

	charts.AssertExpectations(t)
	charts.AssertNumberOfCalls(t, "Render", 2)
	assert.Len(t, rep.Charts, 2)

	summary, err := os.ReadFile(filepath.Join(dir, "analysis_summary.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(summary, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(summary), "Element,n_groups,group_names,p_value,significance,effect_size")

	for _, name := range []string{"report.md", "report.html"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0))
	}
	_, err = os.Stat(filepath.Join(dir, "analysis_summary.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestAnalysisService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewAnalysisService(AnalysisOptions{OutputDir: t.TempDir(), Workers: 1})
	_, err := svc.Analyze(ctx, testDataset())
	assert.Error(t, err)
}

func TestAnalysisService_SyntheticStudy(t *testing.T) {
	ds := testkit.NewStudyDataGenerator(testkit.DefaultStudyConfig()).GenerateDataset()

	svc := NewAnalysisService(AnalysisOptions{OutputDir: t.TempDir(), Workers: 3})
	rep, err := svc.Analyze(context.Background(), ds)
	require.NoError(t, err)

	require.Len(t, rep.Comparisons, 3)
	first := rep.Comparisons[0]
	assert.Equal(t, "Element1_Obligation", first.Dimension.Column)
	assert.Less(t, first.PValue, 0.01)
	assert.Greater(t, first.EtaSquared, 0.3)

	require.Len(t, rep.Correlations, 3)
	// ValidCoping lowers delta, so label score and delta move in opposite directions.
	assert.Less(t, rep.Correlations[0].Rho, 0.0)
}

func TestAnalysisService_AnalyzeCreatesChartDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "charts")
	renderer := chart.NewBoxPlotRenderer(dir, chart.DefaultOptions())

	svc := NewAnalysisService(AnalysisOptions{OutputDir: dir, Workers: 2, Charts: renderer})
	rep, err := svc.Analyze(context.Background(), testDataset())
	require.NoError(t, err)

	require.Len(t, rep.Charts, 2)
	for _, path := range rep.Charts {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0))
	}
	// no summary or reports before WriteArtifacts
	_, err = os.Stat(filepath.Join(dir, "analysis_summary.csv"))
	assert.True(t, os.IsNotExist(err))
}
