package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stailab/domain/core"
	"stailab/domain/study"
	"stailab/internal"
	"stailab/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath   string
	fileType   string // "xlsx" or "csv"
	dimensions []study.Dimension
	log        *internal.Logger
}

// NewDataReader creates a reader for the study's default element columns.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath:   filePath,
		fileType:   fileType,
		dimensions: study.DefaultDimensions,
		log:        internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// WithDimensions overrides which element columns are looked for.
func (r *DataReader) WithDimensions(dims []study.Dimension) *DataReader {
	r.dimensions = dims
	return r
}

// Load reads the file and converts it into a dataset fingerprinted by the
// SHA-256 of the file's bytes.
func (r *DataReader) Load() (*study.Dataset, error) {
	r.log.Info("Starting to read %s file: %s", r.fileType, r.filePath)

	raw, err := os.ReadFile(r.filePath)
	if os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.filePath)
	}

	table, err := r.ReadData(raw)
	if err != nil {
		return nil, err
	}

	ds, err := ParseDataset(table, r.dimensions, r.log)
	if err != nil {
		return nil, err
	}
	ds.Source = r.filePath
	ds.Fingerprint = core.NewHash(raw)
	return ds, nil
}

// ReadData decodes raw file bytes into an untyped table.
func (r *DataReader) ReadData(raw []byte) (*TableData, error) {
	switch r.fileType {
	case "csv":
		return r.readCSVData(bytes.NewReader(raw))
	case "xlsx":
		return r.readExcelData(bytes.NewReader(raw))
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType), nil)
	}
}

// readExcelData reads Sheet1 of a workbook.
func (r *DataReader) readExcelData(src io.Reader) (*TableData, error) {
	start := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.InvalidInput("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("failed to read %s", SheetName), err)
	}
	r.log.Debug("%s read in %.2fms (%d rows)", SheetName, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput("Excel file must have at least a header row and one data row", nil)
	}
	return r.processRows(rows), nil
}

// readCSVData reads UTF-8 CSV, tolerating a leading byte order mark.
func (r *DataReader) readCSVData(src io.Reader) (*TableData, error) {
	start := time.Now()
	reader := csv.NewReader(stripBOM(src))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InvalidInput("failed to read CSV file", err)
	}
	r.log.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput("CSV file must have at least a header row and one data row", nil)
	}
	return r.processRows(rows), nil
}

func stripBOM(src io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(src, buf)
	if n == 3 && bytes.Equal(buf, []byte{0xEF, 0xBB, 0xBF}) {
		return src
	}
	return io.MultiReader(bytes.NewReader(buf[:n]), src)
}

// processRows converts raw string rows into TableData
func (r *DataReader) processRows(rows [][]string) *TableData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.log.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))
	return &TableData{Headers: headers, Rows: dataRows}
}

// ParseDataset types a table: scores become floats and element columns become
// categories. Rows missing either score are dropped and counted; malformed
// scores or unknown category values reject the whole table. Element columns
// absent from the table are skipped, an empty element cell counts as
// InsufficientData.
func ParseDataset(table *TableData, dims []study.Dimension, log *internal.Logger) (*study.Dataset, error) {
	for _, col := range []string{ColumnScoreA, ColumnScoreB} {
		if !table.HasColumn(col) {
			return nil, errors.InvalidInput("missing column", fmt.Errorf("%w: %s", core.ErrMissingColumn, col))
		}
	}

	present := make([]study.Dimension, 0, len(dims))
	for _, d := range dims {
		if table.HasColumn(d.Column) {
			present = append(present, d)
		} else {
			log.Warn("element column %s not found, skipping", d.Column)
		}
	}

	idColumn := detectParticipantColumn(table)
	ds := &study.Dataset{Dimensions: present}

	for i, row := range table.Rows {
		line := i + 2 // header is line 1
		aText, bText := row[ColumnScoreA], row[ColumnScoreB]
		if aText == "" || bText == "" {
			ds.DroppedRows++
			continue
		}
		a, err := parseScore(ColumnScoreA, aText, line)
		if err != nil {
			return nil, err
		}
		b, err := parseScore(ColumnScoreB, bText, line)
		if err != nil {
			return nil, err
		}

		labels := make(map[string]study.Category, len(present))
		for _, d := range present {
			text := row[d.Column]
			if text == "" {
				labels[d.Column] = study.InsufficientData
				continue
			}
			c, err := study.ParseCategory(text)
			if err != nil {
				return nil, errors.InvalidInput("invalid element label", core.NewUnknownCategoryError(d.Column, text, line))
			}
			labels[d.Column] = c
		}

		participant := fmt.Sprintf("P%02d", len(ds.Observations)+1)
		if idColumn != "" && row[idColumn] != "" {
			participant = row[idColumn]
		}
		ds.Observations = append(ds.Observations, study.NewObservation(participant, a, b, labels))
	}

	if ds.DroppedRows > 0 {
		log.Warn("dropped %d rows without both scores", ds.DroppedRows)
	}
	log.Info("loaded %d participants, %d element columns", len(ds.Observations), len(present))
	return ds, nil
}

func parseScore(column, text string, line int) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInput("invalid score", core.NewNonNumericScoreError(column, text, line))
	}
	return v, nil
}

func detectParticipantColumn(table *TableData) string {
	for _, name := range participantColumns {
		for _, header := range table.Headers {
			if strings.EqualFold(header, name) {
				return header
			}
		}
	}
	return ""
}
