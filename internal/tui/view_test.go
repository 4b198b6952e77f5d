package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func TestView_Header(t *testing.T) {
	m, ctrl, _, _ := newTestModel(t)
	m = sized(t, m, 100, 40)

	view := m.View()
	assert.Contains(t, view, "company tracker")
	assert.Contains(t, view, "v1.2.3")
	assert.Contains(t, view, "http://localhost:5000")
	assert.Contains(t, view, "updated loading")
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "every 30s")

	ctrl.running = true
	header := m.renderHeader()
	assert.Contains(t, header, "monitoring")
	assert.NotContains(t, header, "idle")
}

func TestView_Cards(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = sized(t, m, 100, 40)
	m, _ = update(t, m, CardMsg{ID: CardTotal, Text: "42"})
	m, _ = update(t, m, CardMsg{ID: CardRecent, Text: "5"})
	m, _ = update(t, m, CardMsg{ID: CardCompanies, Text: "1"})

	view := m.View()
	for _, label := range cardLabels {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "updated just now")
}

func TestView_CardsStackOnNarrowTerminal(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m = sized(t, m, BreakpointCards-1, 40)
	assert.True(t, m.stacked())
	cards := m.renderCards()
	assert.Greater(t, strings.Index(cards, cardLabels[1]), strings.Index(cards, cardLabels[0]))
	assert.LessOrEqual(t, lipgloss.Width(cards), BreakpointCards-1)

	m = sized(t, m, BreakpointCards, 40)
	assert.False(t, m.stacked())
}

func TestCalculateCardWidth(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	assert.Equal(t, 30, sized(t, m, 200, 40).calculateCardWidth())
	assert.Equal(t, 10, sized(t, m, 12, 40).calculateCardWidth())
}

func TestView_Charts(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = sized(t, m, BreakpointCharts, 40)
	m, _ = update(t, m, ChartMsg{ID: ChartCompanies, Labels: []string{"Acme", "Globex"}, Values: []float64{3, 1}})

	charts := m.renderCharts()
	assert.Contains(t, charts, "Mentions by Company")
	assert.Contains(t, charts, "Mentions by Source")
	assert.Contains(t, charts, "Acme")
	assert.Contains(t, charts, "top 2")
	assert.Contains(t, charts, "no data")
}

func TestView_Toasts(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = sized(t, m, 100, 40)
	m, _ = update(t, m, ToastsMsg{Items: []dashboard.Notification{
		{ID: 1, Kind: dashboard.KindDanger, Message: "Error: rate limited"},
	}})

	view := m.View()
	assert.Contains(t, view, "Error: rate limited")
	assert.Contains(t, view, dashboard.IconTriangle)
	assert.NotContains(t, m.renderToasts(), dashboard.IconCircle)
	assert.Contains(t, view, "x dismiss")
}

func TestView_ToastIconsByKind(t *testing.T) {
	tests := []struct {
		kind dashboard.Kind
		icon string
	}{
		{dashboard.KindSuccess, dashboard.IconCheck},
		{dashboard.KindDanger, dashboard.IconTriangle},
		{dashboard.KindWarning, dashboard.IconCircle},
		{dashboard.KindInfo, dashboard.IconInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m, _, _, _ := newTestModel(t)
			m = sized(t, m, 100, 40)
			m, _ = update(t, m, ToastsMsg{Items: []dashboard.Notification{
				{ID: 1, Kind: tt.kind, Message: "note"},
			}})
			assert.Contains(t, m.renderToasts(), tt.icon)
		})
	}
}

func TestView_Mentions(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = sized(t, m, 100, 40)

	assert.Empty(t, m.renderMentions())

	mentions := make([]api.Mention, maxMentions+2)
	for i := range mentions {
		mentions[i] = api.Mention{CompanyName: "Acme", Title: "headline", Source: "LinkedIn"}
	}
	mentions[0].Title = "Acme raises Series B"
	m, _ = update(t, m, MentionsMsg{Mentions: mentions})

	feed := m.renderMentions()
	assert.Contains(t, feed, "Recent Mentions")
	assert.Contains(t, feed, "Acme raises Series B")
	assert.Equal(t, maxMentions, strings.Count(feed, "LinkedIn"))
}

func TestView_LoadingModal(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = sized(t, m, 100, 40)
	m, _ = update(t, m, ProgressMsg{Visible: true})

	view := m.View()
	assert.Contains(t, view, "Running monitoring...")
	assert.NotContains(t, view, "Total Mentions")
}

func TestView_Footer(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	footer := m.renderFooter()
	assert.Contains(t, footer, "q quit")
	assert.Contains(t, footer, "m run monitoring")
}
