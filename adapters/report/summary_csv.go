package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	domainstats "stailab/domain/stats"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteSummaryCSV writes the summary table with a UTF-8 byte order mark.
// Undefined numbers are written as empty cells.
func WriteSummaryCSV(w io.Writer, rows []domainstats.SummaryRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(domainstats.SummaryHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Element,
			strconv.Itoa(r.NGroups),
			r.GroupNames,
			csvFloat(r.PValue),
			r.Significance,
			csvFloat(r.EffectSize),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write summary row %s: %w", r.Element, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
