package report

import (
	"bytes"
	"fmt"
	"strings"

	domainstats "stailab/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders r as a GitHub-flavoured Markdown document.
func Markdown(r *domainstats.Report) []byte {
	var b bytes.Buffer

	b.WriteString("# STAI-S element analysis\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt)
	fmt.Fprintf(&b, "- Source: `%s` (sha256 `%s`)\n", r.Source, r.Fingerprint.Short())
	fmt.Fprintf(&b, "- Participants: %d\n", r.Participants)
	if r.DroppedRows > 0 {
		fmt.Fprintf(&b, "- Rows dropped for missing scores: %d\n", r.DroppedRows)
	}
	b.WriteString("\n")

	if p := r.Paired; p != nil {
		b.WriteString("## Sample overview\n\n")
		mdTable(&b, overviewHeader, overviewRows(p))
		b.WriteString("## Condition A vs B\n\n")
		mdTable(&b, normalityHeader, normalityRows(p))
		mdTable(&b, pairedTestHeader, pairedTestRows(p))
		fmt.Fprintf(&b, "Cohen's d = %s (mean(A-B) = %s, sd(A-B) = %s)\n\n", num(p.CohensD, 3), num(p.MeanDiff, 3), num(p.SDDiff, 3))
		sel := p.Selected()
		fmt.Fprintf(&b, "**%s: %s %s**\n\n", sel.Kind, domainstats.FormatPaperP(sel.PValue), sel.Significance.Marker())
	}

	for _, dim := range reportDimensions(r) {
		fmt.Fprintf(&b, "## %s\n\n", dim.Name)
		if f, ok := frequenciesFor(r, dim); ok {
			mdTable(&b, frequencyHeader, frequencyRows(f))
		}
		if cmp := comparisonFor(r, dim); cmp != nil {
			fmt.Fprintf(&b, "Analyzed %d, excluded %d.\n\n", cmp.Analyzed, cmp.Excluded)
			mdTable(&b, groupHeader, groupRows(cmp))
			fmt.Fprintf(&b, "- %s\n", leveneLine(cmp))
			fmt.Fprintf(&b, "- `%s`\n", domainstats.PaperLine(cmp))
			fmt.Fprintf(&b, "- %s\n\n", effectLine(cmp))
		}
		if reason, ok := skippedFor(r, dim); ok {
			fmt.Fprintf(&b, "> Skipped: %s\n\n", reason)
		}
	}

	if len(r.Correlations) > 0 {
		b.WriteString("## Spearman correlation\n\n")
		mdTable(&b, correlationHeader, correlationRows(r.Correlations))
	}

	if rows := r.SummaryRows(); len(rows) > 0 {
		b.WriteString("## Summary\n\n")
		mdTable(&b, domainstats.SummaryHeader, summaryRows(rows))
	}

	if len(r.Charts) > 0 {
		b.WriteString("## Charts\n\n")
		for _, chart := range r.Charts {
			fmt.Fprintf(&b, "![%s](%s)\n\n", chart, chart)
		}
	}
	return b.Bytes()
}

// HTML converts the Markdown report into a complete HTML page.
func HTML(r *domainstats.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "STAI-S element analysis " + r.RunID.String(),
	})
	return markdown.ToHTML(Markdown(r), p, renderer)
}

func mdTable(b *bytes.Buffer, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(mdEscape(headers), " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("|" + strings.Join(sep, "|") + "|\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(mdEscape(row), " | ") + " |\n")
	}
	b.WriteString("\n")
}

func mdEscape(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		c = strings.ReplaceAll(c, "*", `\*`)
		out[i] = c
	}
	return out
}
