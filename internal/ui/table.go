package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/0xpinara/company-tracker/internal/api"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a Bubbles table with the CLI styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is focused in CLI output, so the selected row must look like
	// any other row.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(columns, tableRows).View()
}

// RenderMentionsTable renders mentions newest first as returned by the server.
func RenderMentionsTable(mentions []api.Mention) string {
	if len(mentions) == 0 {
		return "No mentions yet"
	}

	columns := []TableColumn{
		{Title: "Company", Width: 18},
		{Title: "Title", Width: 48},
		{Title: "Source", Width: 14},
		{Title: "Sentiment", Width: 9},
		{Title: "Published", Width: 16},
	}
	rows := make([][]string, len(mentions))
	for i, m := range mentions {
		rows[i] = []string{
			Truncate(m.CompanyName, 18),
			Truncate(m.Title, 48),
			Truncate(m.Source, 14),
			m.Sentiment(),
			Truncate(m.PublishedDate, 16),
		}
	}
	return RenderSimpleTable(columns, rows)
}

// RenderCompaniesTable renders the portfolio company list.
func RenderCompaniesTable(companies []api.Company) string {
	if len(companies) == 0 {
		return "No companies configured"
	}

	columns := []TableColumn{
		{Title: "Company", Width: 20},
		{Title: "Fund", Width: 12},
		{Title: "Website", Width: 30},
		{Title: "Keywords", Width: 30},
	}
	rows := make([][]string, len(companies))
	for i, c := range companies {
		rows[i] = []string{
			Truncate(c.Name, 20),
			Truncate(c.Fund, 12),
			Truncate(c.Website, 30),
			Truncate(strings.Join(c.Keywords, ", "), 30),
		}
	}
	return RenderSimpleTable(columns, rows)
}

// RenderCountTable renders label/count pairs, used by `tracker stats` when
// charts are turned off.
func RenderCountTable(title string, labels []string, values []float64) string {
	rows := make([][]string, len(labels))
	for i := range labels {
		rows[i] = []string{labels[i], strconv.FormatFloat(values[i], 'f', -1, 64)}
	}
	return RenderSimpleTable([]TableColumn{{Title: title, Width: 24}, {Title: "Count", Width: 8}}, rows)
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// Truncate shortens s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
