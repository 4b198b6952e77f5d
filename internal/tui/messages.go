package tui

import (
	"time"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// CardID identifies one of the stat cards.
type CardID int

const (
	CardTotal CardID = iota
	CardRecent
	CardCompanies
	cardCount
)

// ChartID identifies one of the charts.
type ChartID int

const (
	ChartCompanies ChartID = iota
	ChartSources
	chartCount
)

// CardMsg sets the text of a stat card.
type CardMsg struct {
	ID   CardID
	Text string
}

// ChartMsg replaces a chart's series.
type ChartMsg struct {
	ID     ChartID
	Labels []string
	Values []float64
}

// MentionsMsg replaces the recent mentions list.
type MentionsMsg struct {
	Mentions []api.Mention
}

// ProgressMsg shows or hides the loading modal.
type ProgressMsg struct {
	Visible bool
}

// ReloadMsg resets the dashboard and refreshes it once.
type ReloadMsg struct{}

// ToastsMsg carries the current notification stack.
type ToastsMsg struct {
	Items []dashboard.Notification
}

// clockMsg advances the "last update" counter.
type clockMsg time.Time
