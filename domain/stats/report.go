package stats

import (
	"stailab/domain/core"
	"stailab/domain/study"
)

// DimensionFrequencies is the category breakdown of one dimension.
type DimensionFrequencies struct {
	Dimension study.Dimension `json:"dimension"`
	Rows      []FrequencyRow  `json:"rows"`
}

// SkippedDimension records a dimension that could not be compared.
type SkippedDimension struct {
	Dimension study.Dimension `json:"dimension"`
	Reason    string          `json:"reason"`
}

// Report is everything one analysis run produced, in dimension order.
type Report struct {
	RunID        core.RunID             `json:"run_id"`
	Source       string                 `json:"source"`
	Fingerprint  core.Hash              `json:"fingerprint"`
	GeneratedAt  core.Timestamp         `json:"generated_at"`
	Participants int                    `json:"participants"`
	DroppedRows  int                    `json:"dropped_rows"`
	Paired       *PairedResult          `json:"paired,omitempty"`
	Frequencies  []DimensionFrequencies `json:"frequencies"`
	Comparisons  []*ComparisonResult    `json:"comparisons"`
	Correlations []*CorrelationResult   `json:"correlations"`
	Skipped      []SkippedDimension     `json:"skipped,omitempty"`
	Charts       []string               `json:"charts,omitempty"`
}

// SummaryRows flattens the comparisons for the summary table.
func (r *Report) SummaryRows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(r.Comparisons))
	for _, c := range r.Comparisons {
		rows = append(rows, NewSummaryRow(c))
	}
	return rows
}
