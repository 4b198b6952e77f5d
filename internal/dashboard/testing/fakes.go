// Package testing provides test doubles for the dashboard package.
package testing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// FakeClock is a manually advanced dashboard.Clock. Timers and tickers only
// fire inside Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	tickers []*FakeTicker
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewFakeClock creates a clock at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to run when the clock passes now+d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) dashboard.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return &timerHandle{clock: c, t: t}
}

// NewTicker creates a ticker that delivers on every multiple of d.
func (c *FakeClock) NewTicker(d time.Duration) dashboard.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{
		clock:  c,
		period: d,
		next:   c.now.Add(d),
		ch:     make(chan time.Time, 64),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward, delivering due ticks and running due
// timer callbacks in deadline order on the calling goroutine.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	for _, t := range c.tickers {
		if t.stopped {
			continue
		}
		for !t.next.After(now) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}

	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

// PendingTimers counts timers that have neither fired nor been stopped.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// ActiveTickers counts tickers that have not been stopped.
func (c *FakeClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type timerHandle struct {
	clock *FakeClock
	t     *fakeTimer
}

func (h *timerHandle) Stop() bool {
	h.clock.mu.Lock()
	defer h.clock.mu.Unlock()
	if h.t.stopped || h.t.fired {
		return false
	}
	h.t.stopped = true
	return true
}

// FakeTicker is the ticker handed out by FakeClock.
type FakeTicker struct {
	clock   *FakeClock
	period  time.Duration
	next    time.Time
	ch      chan time.Time
	stopped bool
}

// C returns the tick channel.
func (t *FakeTicker) C() <-chan time.Time { return t.ch }

// Stop stops future deliveries.
func (t *FakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// FakeStats is a scripted dashboard.StatsSource.
type FakeStats struct {
	mu sync.Mutex

	// Snapshots are returned in call order; the last one repeats.
	Snapshots []*api.StatsSnapshot
	Err       error

	calls int
	gates map[int]chan struct{}
}

// NewFakeStats returns a source that always answers with snap.
func NewFakeStats(snap *api.StatsSnapshot) *FakeStats {
	return &FakeStats{Snapshots: []*api.StatsSnapshot{snap}}
}

// Gate makes call n (1-based) block until the returned channel is closed.
func (f *FakeStats) Gate(n int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates == nil {
		f.gates = make(map[int]chan struct{})
	}
	ch := make(chan struct{})
	f.gates[n] = ch
	return ch
}

// FetchStats implements dashboard.StatsSource.
func (f *FakeStats) FetchStats(ctx context.Context) (*api.StatsSnapshot, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	gate := f.gates[n]
	err := f.Err
	var snap *api.StatsSnapshot
	if len(f.Snapshots) > 0 {
		idx := n - 1
		if idx >= len(f.Snapshots) {
			idx = len(f.Snapshots) - 1
		}
		snap = f.Snapshots[idx]
	}
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Calls returns how many fetches were made.
func (f *FakeStats) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeTrigger is a scripted dashboard.MonitoringTrigger.
type FakeTrigger struct {
	mu sync.Mutex

	Result *api.MonitoringResult
	Err    error
	Panic  bool

	// Block, when set, holds every call until it is closed.
	Block chan struct{}
	// Started receives once per call, before blocking.
	Started chan struct{}

	calls int
}

// RunMonitoring implements dashboard.MonitoringTrigger.
func (f *FakeTrigger) RunMonitoring(ctx context.Context) (*api.MonitoringResult, error) {
	f.mu.Lock()
	f.calls++
	res, err, block, started, panics := f.Result, f.Err, f.Block, f.Started, f.Panic
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if panics {
		panic("trigger exploded")
	}
	return res, err
}

// Calls returns how many times the trigger ran.
func (f *FakeTrigger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// RecordingCard is a dashboard.CardSlot that remembers its text.
type RecordingCard struct {
	mu   sync.Mutex
	text string
	sets int
}

func (c *RecordingCard) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.sets++
}

// Text returns the last text set.
func (c *RecordingCard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Sets returns how many times SetText was called.
func (c *RecordingCard) Sets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// RecordingChart is a dashboard.Chart that remembers its series.
type RecordingChart struct {
	mu      sync.Mutex
	labels  []string
	values  []float64
	redraws int
}

func (c *RecordingChart) SetData(labels []string, values []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = labels
	c.values = values
}

func (c *RecordingChart) Redraw() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redraws++
}

// Data returns the current series.
func (c *RecordingChart) Data() ([]string, []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels, c.values
}

// Redraws returns how many times Redraw was called.
func (c *RecordingChart) Redraws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
}

// RecordingProgress is a dashboard.Progress that counts show/hide calls.
type RecordingProgress struct {
	mu      sync.Mutex
	shows   int
	hides   int
	visible bool
}

func (p *RecordingProgress) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows++
	p.visible = true
}

func (p *RecordingProgress) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hides++
	p.visible = false
}

// Counts returns the number of Show and Hide calls.
func (p *RecordingProgress) Counts() (shows, hides int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows, p.hides
}

// Visible reports whether the indicator is currently shown.
func (p *RecordingProgress) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// RecordingReloader counts reloads.
type RecordingReloader struct {
	mu    sync.Mutex
	count int
}

func (r *RecordingReloader) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

// Count returns how many reloads happened.
func (r *RecordingReloader) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Notice is one recorded notification.
type Notice struct {
	Kind    dashboard.Kind
	Message string
}

// RecordingNotifier is a dashboard.Notifier that keeps every notification.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *RecordingNotifier) Notify(kind dashboard.Kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Kind: kind, Message: message})
}

// Notices returns a copy of the recorded notifications.
func (n *RecordingNotifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

// Count returns the number of notifications of the given kind.
func (n *RecordingNotifier) Count(kind dashboard.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, x := range n.notices {
		if x.Kind == kind {
			c++
		}
	}
	return c
}
