// Package report renders an analysis report for the terminal, as Markdown and
// HTML, and as the flat summary table.
package report

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#2E86AB")
	colorSoft    = lipgloss.Color("#A8DADC")
	colorWarm    = lipgloss.Color("#F18F01")
	colorMuted   = lipgloss.Color("#6C757D")
	colorWarning = lipgloss.Color("#F4D03F")
)

// Styles are the terminal styles used by the console renderer.
var Styles = struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	Significant lipgloss.Style
	Warning     lipgloss.Style
	Box         lipgloss.Style
	TableBorder lipgloss.Style
	Header      lipgloss.Style
	Cell        lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Section:     lipgloss.NewStyle().Bold(true).Foreground(colorWarm).MarginTop(1),
	Label:       lipgloss.NewStyle().Foreground(colorSoft),
	Muted:       lipgloss.NewStyle().Foreground(colorMuted),
	Significant: lipgloss.NewStyle().Bold(true).Foreground(colorWarm),
	Warning:     lipgloss.NewStyle().Foreground(colorWarning),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
	TableBorder: lipgloss.NewStyle().Foreground(colorMuted),
	Header:      lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Cell:        lipgloss.NewStyle().Padding(0, 1),
}

// num formats v with prec decimals; undefined values print as "n/a".
func num(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
