package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// Sender delivers messages to a running Bubble Tea program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge implements the dashboard display capabilities and forwards every
// call to the Bubble Tea program via Send, which is goroutine-safe. Calls
// made before Attach are dropped.
type Bridge struct {
	mu     sync.RWMutex
	sender Sender
}

// NewBridge creates an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the program that receives messages.
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	b.sender = s
	b.mu.Unlock()
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	s := b.sender
	b.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

// Display builds a dashboard.Display wired to every element of the view.
func (b *Bridge) Display(companyLimit, sourceLimit int) *dashboard.Display {
	return &dashboard.Display{
		Total:        b.Card(CardTotal),
		Recent:       b.Card(CardRecent),
		Companies:    b.Card(CardCompanies),
		CompanyChart: b.Chart(ChartCompanies),
		SourceChart:  b.Chart(ChartSources),
		Feed:         b,
		CompanyLimit: companyLimit,
		SourceLimit:  sourceLimit,
	}
}

// Card returns the slot for a stat card.
func (b *Bridge) Card(id CardID) dashboard.CardSlot {
	return bridgeCard{b: b, id: id}
}

// Chart returns the chart handle for id.
func (b *Bridge) Chart(id ChartID) dashboard.Chart {
	return &bridgeChart{b: b, id: id}
}

// SetMentions implements dashboard.MentionFeed.
func (b *Bridge) SetMentions(mentions []api.Mention) {
	b.send(MentionsMsg{Mentions: mentions})
}

// Show implements dashboard.Progress.
func (b *Bridge) Show() { b.send(ProgressMsg{Visible: true}) }

// Hide implements dashboard.Progress.
func (b *Bridge) Hide() { b.send(ProgressMsg{Visible: false}) }

// Reload implements dashboard.Reloader.
func (b *Bridge) Reload() { b.send(ReloadMsg{}) }

// Watch forwards the presenter's stack to the view on every change.
func (b *Bridge) Watch(p *dashboard.Presenter) {
	p.OnChange(func() {
		b.send(ToastsMsg{Items: p.Active()})
	})
}

type bridgeCard struct {
	b  *Bridge
	id CardID
}

func (c bridgeCard) SetText(text string) {
	c.b.send(CardMsg{ID: c.id, Text: text})
}

// bridgeChart buffers SetData until Redraw, matching the set-then-update
// contract of dashboard.Chart.
type bridgeChart struct {
	b  *Bridge
	id ChartID

	mu     sync.Mutex
	labels []string
	values []float64
}

func (c *bridgeChart) SetData(labels []string, values []float64) {
	c.mu.Lock()
	c.labels, c.values = labels, values
	c.mu.Unlock()
}

func (c *bridgeChart) Redraw() {
	c.mu.Lock()
	msg := ChartMsg{ID: c.id, Labels: c.labels, Values: c.values}
	c.mu.Unlock()
	c.b.send(msg)
}
