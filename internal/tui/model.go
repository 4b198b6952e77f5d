package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
	"github.com/0xpinara/company-tracker/internal/ui"
)

// Controller is the part of dashboard.Controller the view drives.
type Controller interface {
	Refresh(ctx context.Context) error
	RunMonitoring(ctx context.Context) dashboard.Outcome
	RefreshData()
	Running() bool
	Interval() time.Duration
}

// Notifications is the part of dashboard.Presenter the view drives.
type Notifications interface {
	DismissNewest() bool
	Clear()
}

// Width breakpoints
const (
	// Cards stack vertically below this width.
	BreakpointCards = 80
	// Charts sit side by side at or above this width.
	BreakpointCharts = 120
)

// placeholder shown in a card before its first value arrives.
const placeholder = "—"

// clockInterval drives the "last update" counter in the header.
const clockInterval = time.Second

type chartData struct {
	labels []string
	values []float64
}

// Options configures the dashboard view.
type Options struct {
	Server  string
	Version string
	// Now is used for "last update" bookkeeping. Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model for the tracker dashboard.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	notes Notifications

	server  string
	version string
	now     func() time.Time

	cards    [cardCount]string
	trends   [cardCount]*trend
	charts   [chartCount]chartData
	mentions []api.Mention
	toasts   []dashboard.Notification

	loading bool
	spinner spinner.Model

	width      int
	height     int
	lastUpdate time.Time
	showHelp   bool
	quitting   bool
}

// NewModel creates the dashboard model. ctx bounds the requests the view
// starts on its own (initial load, refresh key, monitoring key).
func NewModel(ctx context.Context, ctrl Controller, notes Notifications, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = ui.SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		notes:   notes,
		server:  opts.Server,
		version: opts.Version,
		now:     now,
		spinner: sp,
	}
	for i := range m.trends {
		m.trends[i] = newTrend(trendSize)
	}
	m.reset()
	return m
}

// reset clears everything fetched from the backend. Card trends survive so
// a reload doesn't wipe the history.
func (m *Model) reset() {
	for i := range m.cards {
		m.cards[i] = placeholder
	}
	m.charts = [chartCount]chartData{}
	m.mentions = nil
	m.lastUpdate = time.Time{}
}

// Init loads the first snapshot right away instead of waiting a full
// interval for the first tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.clockCmd())
}

// Update handles messages from the bridge, the keyboard and the clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CardMsg:
		if msg.ID >= 0 && msg.ID < cardCount {
			m.cards[msg.ID] = msg.Text
			m.lastUpdate = m.now()
			if v, err := strconv.Atoi(msg.Text); err == nil {
				m.trends[msg.ID].push(float64(v))
			}
		}
		return m, nil

	case ChartMsg:
		if msg.ID >= 0 && msg.ID < chartCount {
			m.charts[msg.ID] = chartData{labels: msg.Labels, values: msg.Values}
		}
		return m, nil

	case MentionsMsg:
		m.mentions = msg.Mentions
		return m, nil

	case ToastsMsg:
		m.toasts = msg.Items
		return m, nil

	case ProgressMsg:
		wasLoading := m.loading
		m.loading = msg.Visible
		if m.loading && !wasLoading {
			return m, m.spinner.Tick
		}
		return m, nil

	case ReloadMsg:
		m.reset()
		m.toasts = nil
		return m, tea.Batch(m.clearNotesCmd(), m.refreshCmd())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clockMsg:
		return m, m.clockCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.loading {
		return m.renderLoadingModal()
	}
	return m.renderDashboard()
}

// Card returns the current text of a stat card.
func (m Model) Card(id CardID) string { return m.cards[id] }

// Loading reports whether the loading modal is up.
func (m Model) Loading() bool { return m.loading }

// Toasts returns the notifications currently shown.
func (m Model) Toasts() []dashboard.Notification { return m.toasts }

// SecondsSinceUpdate returns seconds since the last card update, or -1 if
// nothing has been loaded yet.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return -1
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}

func (m Model) refreshCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		_ = ctrl.Refresh(ctx)
		return nil
	}
}

func (m Model) refreshDataCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.RefreshData()
		return nil
	}
}

func (m Model) runMonitoringCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.RunMonitoring(ctx)
		return nil
	}
}

func (m Model) dismissCmd() tea.Cmd {
	notes := m.notes
	if notes == nil {
		return nil
	}
	return func() tea.Msg {
		notes.DismissNewest()
		return nil
	}
}

func (m Model) clearNotesCmd() tea.Cmd {
	notes := m.notes
	if notes == nil {
		return nil
	}
	return func() tea.Msg {
		notes.Clear()
		return nil
	}
}

func (m Model) clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
