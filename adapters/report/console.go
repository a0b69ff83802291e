package report

import (
	"fmt"
	"io"
	"strings"

	domainstats "stailab/domain/stats"
	"stailab/domain/study"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ConsoleRenderer prints a report to a terminal.
type ConsoleRenderer struct {
	w io.Writer
}

func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{w: w}
}

// Render writes every section of r.
func (c *ConsoleRenderer) Render(r *domainstats.Report) error {
	var b strings.Builder

	header := []string{Styles.Title.Render("STAI-S element analysis")}
	if r.RunID != "" {
		header = append(header, Styles.Muted.Render("run "+r.RunID.String()))
	}
	header = append(header,
		fmt.Sprintf("%s %s (sha256 %s)", Styles.Label.Render("source"), r.Source, r.Fingerprint.Short()),
		fmt.Sprintf("%s %d", Styles.Label.Render("participants"), r.Participants),
	)
	if r.DroppedRows > 0 {
		header = append(header, Styles.Warning.Render(fmt.Sprintf("%d rows dropped for missing scores", r.DroppedRows)))
	}
	b.WriteString(Styles.Box.Render(strings.Join(header, "\n")))
	b.WriteString("\n")

	if p := r.Paired; p != nil {
		section(&b, "Sample overview")
		b.WriteString(renderTable(overviewHeader, overviewRows(p)))
		section(&b, "Condition A vs B")
		b.WriteString(renderTable(normalityHeader, normalityRows(p)))
		b.WriteString(renderTable(pairedTestHeader, pairedTestRows(p)))
		fmt.Fprintf(&b, "mean(A-B) = %s, sd(A-B) = %s, Cohen's d = %s\n", num(p.MeanDiff, 3), num(p.SDDiff, 3), num(p.CohensD, 3))
		sel := p.Selected()
		fmt.Fprintf(&b, "%s %s, %s %s\n", Styles.Label.Render("result:"), sel.Kind, domainstats.FormatPaperP(sel.PValue), marker(sel.Significance))
	}

	for _, dim := range reportDimensions(r) {
		section(&b, dim.Name)
		if f, ok := frequenciesFor(r, dim); ok {
			b.WriteString(renderTable(frequencyHeader, frequencyRows(f)))
		}
		if cmp := comparisonFor(r, dim); cmp != nil {
			fmt.Fprintf(&b, "analyzed %d, excluded %d\n", cmp.Analyzed, cmp.Excluded)
			b.WriteString(renderTable(groupHeader, groupRows(cmp)))
			b.WriteString(Styles.Muted.Render(leveneLine(cmp)) + "\n")
			fmt.Fprintf(&b, "%s %s\n", Styles.Label.Render("test:"), cmp.TestChoice)
			fmt.Fprintf(&b, "%s\n", colorByTier(domainstats.PaperLine(cmp), cmp.Significance))
			fmt.Fprintf(&b, "%s\n", effectLine(cmp))
		}
		if reason, ok := skippedFor(r, dim); ok {
			b.WriteString(Styles.Warning.Render("skipped: "+reason) + "\n")
		}
	}

	if len(r.Correlations) > 0 {
		section(&b, "Spearman correlation (label score vs delta)")
		b.WriteString(renderTable(correlationHeader, correlationRows(r.Correlations)))
	}

	if rows := r.SummaryRows(); len(rows) > 0 {
		section(&b, "Summary")
		b.WriteString(renderTable(domainstats.SummaryHeader, summaryRows(rows)))
	}

	for _, chart := range r.Charts {
		fmt.Fprintf(&b, "%s %s\n", Styles.Muted.Render("chart"), chart)
	}

	_, err := io.WriteString(c.w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	b.WriteString(Styles.Section.Render(title))
	b.WriteString("\n")
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return Styles.Cell
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String() + "\n"
}

func marker(s domainstats.SignificanceTier) string {
	return colorByTier(s.Marker(), s)
}

func colorByTier(text string, s domainstats.SignificanceTier) string {
	if s.Significant() {
		return Styles.Significant.Render(text)
	}
	return text
}

// reportDimensions lists every dimension the report mentions, in first-seen order.
func reportDimensions(r *domainstats.Report) []study.Dimension {
	var dims []study.Dimension
	seen := make(map[string]bool)
	add := func(d study.Dimension) {
		if !seen[d.Column] {
			seen[d.Column] = true
			dims = append(dims, d)
		}
	}
	for _, f := range r.Frequencies {
		add(f.Dimension)
	}
	for _, c := range r.Comparisons {
		add(c.Dimension)
	}
	for _, s := range r.Skipped {
		add(s.Dimension)
	}
	return dims
}

func frequenciesFor(r *domainstats.Report, dim study.Dimension) (domainstats.DimensionFrequencies, bool) {
	for _, f := range r.Frequencies {
		if f.Dimension.Column == dim.Column {
			return f, true
		}
	}
	return domainstats.DimensionFrequencies{}, false
}

func comparisonFor(r *domainstats.Report, dim study.Dimension) *domainstats.ComparisonResult {
	for _, c := range r.Comparisons {
		if c.Dimension.Column == dim.Column {
			return c
		}
	}
	return nil
}

func skippedFor(r *domainstats.Report, dim study.Dimension) (string, bool) {
	for _, s := range r.Skipped {
		if s.Dimension.Column == dim.Column {
			return s.Reason, true
		}
	}
	return "", false
}
