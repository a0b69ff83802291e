package ports

import (
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
)

// DatasetLoader produces the participant table from some source.
type DatasetLoader interface {
	Load() (*study.Dataset, error)
}

// ChartRenderer draws one comparison and returns the written file path.
type ChartRenderer interface {
	Render(cmp *domainstats.ComparisonResult, observations []study.Observation) (string, error)
}

// SummaryTableWriter persists the summary table to path.
type SummaryTableWriter interface {
	Write(path string, rows []domainstats.SummaryRow) error
}

// ReportRenderer presents a finished report.
type ReportRenderer interface {
	Render(r *domainstats.Report) error
}
