package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Partial block characters for the fractional tail of a bar (1/8 to 7/8).
var barEighths = []rune("▏▎▍▌▋▊▉")

// RenderBar draws a horizontal bar of value/peak across width cells, using
// partial blocks for the last cell.
func RenderBar(value, peak float64, width int) string {
	if width <= 0 {
		return ""
	}
	if peak <= 0 || value <= 0 {
		return ""
	}
	ratio := value / peak
	if ratio > 1 {
		ratio = 1
	}

	eighths := int(math.Round(ratio * float64(width*8)))
	full := eighths / 8
	rest := eighths % 8

	var sb strings.Builder
	sb.WriteString(strings.Repeat(BarFull, full))
	if rest > 0 && full < width {
		sb.WriteRune(barEighths[rest-1])
	}
	return sb.String()
}

// BarChartOptions controls RenderBarChart.
type BarChartOptions struct {
	LabelWidth int
	BarWidth   int
	Color      lipgloss.Color
}

// RenderBarChart renders one line per label: the label padded to LabelWidth,
// the bar scaled to the largest value, then the count. Values are drawn in
// the order given.
func RenderBarChart(labels []string, values []float64, opts BarChartOptions) string {
	if len(labels) == 0 {
		return MutedStyle().Render("no data")
	}
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = 16
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = 20
	}
	if opts.Color == "" {
		opts.Color = ColorNeonCyan
	}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(opts.Color)
	countStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		bar := padRight(RenderBar(v, peak, opts.BarWidth), opts.BarWidth)
		lines = append(lines,
			padRight(Truncate(label, opts.LabelWidth), opts.LabelWidth)+" "+
				barStyle.Render(bar)+" "+
				countStyle.Render(strconv.FormatFloat(v, 'f', -1, 64)))
	}
	return strings.Join(lines, "\n")
}
