// Package cli renders finance reports for terminal output.
package cli

import (
	"fmt"
	"strings"

	"finance-tracker/internal/finance"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorYellow = lipgloss.Color("#D0A215")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Width(titleWidth).
			Align(lipgloss.Center).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle  = lipgloss.NewStyle().Foreground(colorText)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
	bulletStyle = lipgloss.NewStyle().Foreground(colorAccent)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
)

const titleWidth = 52

// Row is one label/value line of a report table. A Row with an empty Label
// renders as a separator.
type Row struct {
	Label string
	Value string
}

// RenderTitle renders a centered title inside a rounded box.
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderTable renders rows as a two column table with the label column
// left aligned and the value column right aligned.
func RenderTable(title string, rows []Row) string {
	labelWidth, valueWidth := 0, 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
		valueWidth = max(valueWidth, lipgloss.Width(r.Value))
	}

	line := func(left, mid, right string) string {
		return borderStyle.Render(left +
			strings.Repeat("─", labelWidth+2) + mid +
			strings.Repeat("─", valueWidth+2) + right)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(headerStyle.Render(title))
		b.WriteString("\n")
	}

	b.WriteString(line("╭", "┬", "╮"))
	b.WriteString("\n")
	for _, r := range rows {
		if r.Label == "" {
			b.WriteString(line("├", "┼", "┤"))
			b.WriteString("\n")
			continue
		}
		sep := borderStyle.Render("│")
		b.WriteString(sep)
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %-*s ", labelWidth, r.Label)))
		b.WriteString(sep)
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %*s ", valueWidth, r.Value)))
		b.WriteString(sep)
		b.WriteString("\n")
	}
	b.WriteString(line("╰", "┴", "╯"))
	b.WriteString("\n")

	return b.String()
}

// LevelStyle returns the color used for a health level.
func LevelStyle(level finance.HealthLevel) lipgloss.Style {
	switch level {
	case finance.LevelExcellent:
		return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	case finance.LevelGood:
		return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	case finance.LevelWarning:
		return lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	}
}

// RenderList renders a titled bullet list. Empty lists render nothing.
func RenderList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(bulletStyle.Render("  • "))
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHealthReport renders the inputs, score and guidance of a report.
func RenderHealthReport(in finance.HealthInput, report finance.HealthReport) string {
	rows := []Row{
		{"Income", finance.FormatRupiah(in.MonthlyIncome)},
		{"Expense", finance.FormatRupiah(in.MonthlyExpense)},
		{"Net cashflow", finance.FormatRupiah(report.NetCashflow)},
		{},
		{"Savings", finance.FormatRupiah(in.SavingsCurrent)},
		{"Savings target", finance.FormatRupiah(in.SavingsTarget)},
		{},
		{"Saving ratio", fmt.Sprintf("%.1f%%", report.SavingRatio)},
		{"Expense ratio", fmt.Sprintf("%.1f%%", report.ExpenseRatio)},
		{"Health score", fmt.Sprintf("%d/100", report.HealthScore)},
	}

	var b strings.Builder
	b.WriteString(RenderTable("", rows))
	b.WriteString("Level: ")
	b.WriteString(LevelStyle(report.Level).Render(string(report.Level)))
	b.WriteString("\n\n")

	if s := RenderList("Insights", report.Insights); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(RenderList("Actions", report.Actions))

	return b.String()
}

// RenderWarning renders a saving warning, or a neutral line when there is none.
func RenderWarning(message string, ok bool) string {
	if !ok {
		return labelStyle.Render("No saving warning.")
	}
	return warnStyle.Render("! " + message)
}
