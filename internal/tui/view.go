package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/ui"
)

const (
	toastWidth    = 44
	maxMentions   = 8
	defaultWidth  = 100
	chartBarWidth = 24
)

var cardLabels = [cardCount]string{
	"Total Mentions",
	"Recent Mentions (24h)",
	"Active Companies",
}

var chartTitles = [chartCount]string{
	"Mentions by Company",
	"Mentions by Source",
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n\n")
	b.WriteString(m.renderCharts())
	if feed := m.renderMentions(); feed != "" {
		b.WriteString("\n\n")
		b.WriteString(feed)
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title bar with server, staleness and monitoring state.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("company tracker")
	if m.version != "" {
		title += " " + LabelStyle.Render(m.version)
	}

	var updateText string
	switch s := m.SecondsSinceUpdate(); {
	case s < 0:
		updateText = "loading"
	case s == 0:
		updateText = "just now"
	default:
		updateText = fmt.Sprintf("%ds ago", s)
	}

	status := "idle"
	if m.ctrl != nil && m.ctrl.Running() {
		status = lipgloss.NewStyle().Foreground(ui.ColorWarning).Render("monitoring")
	}

	parts := []string{}
	if m.server != "" {
		parts = append(parts, m.server)
	}
	parts = append(parts, "updated "+updateText, status)
	if m.ctrl != nil {
		parts = append(parts, "every "+m.ctrl.Interval().String())
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderToasts renders the notification stack right-aligned, oldest on top.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	boxes := make([]string, len(m.toasts))
	for i, n := range m.toasts {
		icon := lipgloss.NewStyle().Foreground(ui.KindColor(n.Kind)).Render(n.Icon())
		boxes[i] = ToastStyle(n.Kind).Render(icon + " " + n.Message)
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	stack = lipgloss.JoinVertical(lipgloss.Right, stack, LabelStyle.Render("x dismiss"))

	return lipgloss.PlaceHorizontal(m.viewWidth(), lipgloss.Right, stack)
}

// renderCards renders the three stat cards, side by side when the terminal
// is wide enough and stacked otherwise.
func (m Model) renderCards() string {
	width := m.calculateCardWidth()

	cards := make([]string, cardCount)
	for i := range cards {
		value := lipgloss.NewStyle().Foreground(cardAccents[i]).Bold(true).Render(m.cards[i])
		body := LabelStyle.Render(cardLabels[i]) + "\n" + value
		if t := m.trends[i]; t != nil && t.len() >= 2 {
			inner := width - 2 // padding
			body += "\n" + renderSparkline(t.last(inner), inner, cardAccents[i])
		}
		cards[i] = CardStyle.Width(width).Render(body)
	}

	if m.stacked() {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// calculateCardWidth returns the inner width of a stat card.
func (m Model) calculateCardWidth() int {
	if m.stacked() {
		w := m.viewWidth() - 5 // border, padding, margin
		if w < 10 {
			w = 10
		}
		return w
	}
	// Three cards per row, each with 2 border + 2 padding + 1 margin.
	w := (m.viewWidth() - 3*5) / 3
	if w > 30 {
		w = 30
	}
	return w
}

func (m Model) stacked() bool {
	return m.width > 0 && m.width < BreakpointCards
}

func (m Model) viewWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

// renderCharts renders both bar charts.
func (m Model) renderCharts() string {
	sideBySide := m.viewWidth() >= BreakpointCharts
	width := m.viewWidth() - 1
	if sideBySide {
		width = m.viewWidth()/2 - 1
	}

	colors := [chartCount]lipgloss.Color{ColorGraph, ui.ColorNeonPurple}
	sections := make([]string, chartCount)
	for i := range sections {
		data := m.charts[i]
		labelWidth := 16
		barWidth := width - labelWidth - 12
		if barWidth > chartBarWidth {
			barWidth = chartBarWidth
		}
		if barWidth < 4 {
			barWidth = 4
		}

		body := ui.RenderBarChart(data.labels, data.values, ui.BarChartOptions{
			LabelWidth: labelWidth,
			BarWidth:   barWidth,
			Color:      colors[i],
		})
		sections[i] = Section(chartTitles[i], fmt.Sprintf("top %d", len(data.labels)), strings.Split(body, "\n"), width)
	}

	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, sections[0], " ", sections[1])
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMentions renders the recent mentions list when the backend sent one.
func (m Model) renderMentions() string {
	if len(m.mentions) == 0 {
		return ""
	}

	width := m.viewWidth() - 1
	shown := m.mentions
	if len(shown) > maxMentions {
		shown = shown[:maxMentions]
	}

	lines := make([]string, len(shown))
	for i, mention := range shown {
		lines[i] = formatMention(mention, width-4)
	}
	return Section("Recent Mentions", fmt.Sprintf("%d", len(m.mentions)), lines, width)
}

func formatMention(mention api.Mention, width int) string {
	sentiment := mention.Sentiment()
	var dot lipgloss.Style
	switch sentiment {
	case "positive":
		dot = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case "negative":
		dot = lipgloss.NewStyle().Foreground(ui.ColorError)
	default:
		dot = lipgloss.NewStyle().Foreground(ColorTextMuted)
	}

	company := ValueStyle.Render(mention.CompanyName)
	source := LabelStyle.Render("(" + mention.Source + ")")
	prefix := dot.Render(ui.SymbolComplete) + " " + company + " "
	room := width - lipgloss.Width(prefix) - lipgloss.Width(source) - 1
	title := mention.Title
	if room > 0 {
		title = ui.Truncate(title, room)
	}
	return prefix + title + " " + source
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	var hints []string
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// renderLoadingModal renders the centered spinner shown while monitoring runs.
func (m Model) renderLoadingModal() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.spinner.View()+" "+ValueStyle.Render("Running monitoring..."),
		"",
		LabelStyle.Render("Scanning news and social sources."),
		LabelStyle.Render("This can take a few minutes."),
	)
	return m.center(modalStyle.Render(body))
}
