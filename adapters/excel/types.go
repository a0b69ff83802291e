package excel

// RawRowData is one table row keyed by trimmed header.
type RawRowData map[string]string

// TableData is a sheet or CSV file before any typing.
type TableData struct {
	Headers []string
	Rows    []RawRowData
}

// HasColumn reports whether header is present.
func (t *TableData) HasColumn(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// Column names of the judgment sheet.
const (
	ColumnScoreA = "A_Score"
	ColumnScoreB = "B_Score"

	// Sheet read from workbooks.
	SheetName = "Sheet1"
)

// participant id columns, checked in order
var participantColumns = []string{"participant", "participant_id", "id", "no"}
