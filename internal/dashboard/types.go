package dashboard

import (
	"context"

	"github.com/0xpinara/company-tracker/internal/api"
)

// StatsSource fetches the aggregate stats snapshot.
type StatsSource interface {
	FetchStats(ctx context.Context) (*api.StatsSnapshot, error)
}

// MonitoringTrigger starts a monitoring run and waits for its result.
type MonitoringTrigger interface {
	RunMonitoring(ctx context.Context) (*api.MonitoringResult, error)
}

// CardSlot is the text node of a stat card.
type CardSlot interface {
	SetText(text string)
}

// Chart is the minimal chart capability: replace the single data series,
// then redraw.
type Chart interface {
	SetData(labels []string, values []float64)
	Redraw()
}

// MentionFeed shows the recent mention details some backends include in the
// snapshot.
type MentionFeed interface {
	SetMentions(mentions []api.Mention)
}

// Progress is the blocking progress indicator shown while monitoring runs.
type Progress interface {
	Show()
	Hide()
}

// Reloader performs a full state reset of the display.
type Reloader interface {
	Reload()
}

// Notifier shows a short, non-blocking message to the user.
type Notifier interface {
	Notify(kind Kind, message string)
}

// ReloadFunc adapts a function to Reloader.
type ReloadFunc func()

func (f ReloadFunc) Reload() { f() }

type nopProgress struct{}

func (nopProgress) Show() {}
func (nopProgress) Hide() {}

type nopNotifier struct{}

func (nopNotifier) Notify(Kind, string) {}
