package excel

import (
	"fmt"
	"math"

	domainstats "stailab/domain/stats"
	"stailab/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SummaryWriter writes the per-dimension summary table as a workbook.
type SummaryWriter struct{}

func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// Write saves rows to path on SheetName with a bold header row.
func (w *SummaryWriter) Write(path string, rows []domainstats.SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(domainstats.SummaryHeader))
	for i, h := range domainstats.SummaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.RenderError(path, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.RenderError(path, err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return errors.RenderError(path, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.RenderError(path, err)
		}
		values := []interface{}{
			row.Element,
			row.NGroups,
			row.GroupNames,
			cellNumber(row.PValue),
			row.Significance,
			cellNumber(row.EffectSize),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.RenderError(path, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 48); err != nil {
		return errors.RenderError(path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.RenderError(path, fmt.Errorf("save workbook: %w", err))
	}
	return nil
}

// NaN cells are left blank.
func cellNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}
