package excel

import (
	"os"
	"path/filepath"
	"testing"

	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
	"stailab/internal"
	"stailab/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\xEF\xBB\xBFID,A_Score,B_Score,Element1_Obligation,Element2_Burden,Element3_Rejection\n" +
	"s1,40,35,有効,不変,データ不足\n" +
	"s2,42,44,逆効果,NoEffect,有効\n" +
	"s3,,50,有効,有効,有効\n" +
	"s4,38,38,validcoping,,不変\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDataReader_LoadCSV(t *testing.T) {
	path := writeTemp(t, "study.csv", sampleCSV)

	ds, err := NewDataReader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, core.NewHash([]byte(sampleCSV)), ds.Fingerprint)
	assert.Equal(t, 1, ds.DroppedRows)
	require.Len(t, ds.Observations, 3)
	assert.Len(t, ds.Dimensions, 3)

	first := ds.Observations[0]
	assert.Equal(t, "s1", first.Participant)
	assert.Equal(t, 40.0, first.A)
	assert.Equal(t, -5.0, first.Delta())
	assert.Equal(t, study.ValidCoping, first.Label("Element1_Obligation"))
	assert.Equal(t, study.NoEffect, first.Label("Element2_Burden"))
	assert.Equal(t, study.InsufficientData, first.Label("Element3_Rejection"))

	assert.Equal(t, study.NoEffect, ds.Observations[1].Label("Element2_Burden"))
	// empty element cell counts as the sentinel
	assert.Equal(t, study.InsufficientData, ds.Observations[2].Label("Element2_Burden"))
	assert.Equal(t, study.ValidCoping, ds.Observations[2].Label("Element1_Obligation"))
}

func TestDataReader_RejectsUnknownCategory(t *testing.T) {
	path := writeTemp(t, "bad.csv", "A_Score,B_Score,Element1_Obligation\n40,35,maybe\n")

	_, err := NewDataReader(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
	assert.True(t, core.IsInputError(err))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "row 2")
}

func TestDataReader_RejectsNonNumericScore(t *testing.T) {
	path := writeTemp(t, "bad.csv", "A_Score,B_Score\n40,35\nforty,35\n")

	_, err := NewDataReader(path).Load()
	assert.ErrorIs(t, err, core.ErrNonNumericScore)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDataReader_MissingScoreColumn(t *testing.T) {
	path := writeTemp(t, "bad.csv", "A_Score,Element1_Obligation\n40,有効\n")

	_, err := NewDataReader(path).Load()
	assert.ErrorIs(t, err, core.ErrMissingColumn)
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "none.csv")).Load()
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestDataReader_LoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"A_Score", "B_Score", "Element2_Burden"},
		{41, 39, "有効"},
		{45, 47.5, "逆効果"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetName, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewDataReader(path).Load()
	require.NoError(t, err)
	require.Len(t, ds.Observations, 2)
	require.Len(t, ds.Dimensions, 1)
	assert.Equal(t, "Element2_Burden", ds.Dimensions[0].Column)
	assert.Equal(t, 2.5, ds.Observations[1].Delta())
	assert.Equal(t, study.Counterproductive, ds.Observations[1].Label("Element2_Burden"))
	assert.Equal(t, "P01", ds.Observations[0].Participant)
	assert.NotEmpty(t, ds.Fingerprint)
}

func TestParseDataset_CustomDimensions(t *testing.T) {
	table := &TableData{
		Headers: []string{"A_Score", "B_Score", "Mood"},
		Rows:    []RawRowData{{"A_Score": "1", "B_Score": "2", "Mood": "不変"}},
	}
	dims := []study.Dimension{{Column: "Mood", Name: "Mood", Number: 9}}

	ds, err := ParseDataset(table, dims, internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)
	assert.Equal(t, study.NoEffect, ds.Observations[0].Label("Mood"))
}

func TestSummaryWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis_summary.xlsx")
	rows := []domainstats.SummaryRow{
		{Element: "Element 1", NGroups: 3, GroupNames: "ValidCoping, NoEffect, Counterproductive", PValue: 0.001, Significance: "**", EffectSize: 0.9},
	}
	require.NoError(t, NewSummaryWriter().Write(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domainstats.SummaryHeader, got[0])
	assert.Equal(t, "Element 1", got[1][0])
	assert.Equal(t, "3", got[1][1])
	assert.Equal(t, "**", got[1][4])
}
