package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0xpinara/company-tracker/internal/logger"
	"github.com/0xpinara/company-tracker/internal/metrics"
)

// Timing defaults.
const (
	DefaultInterval    = 30 * time.Second
	DefaultReloadDelay = 2 * time.Second
)

// Options configures a Controller. Stats is required for the refresh loop and
// Trigger for monitoring; everything else has a no-op default.
type Options struct {
	Stats   StatsSource
	Trigger MonitoringTrigger

	Display  *Display
	Progress Progress
	Reloader Reloader
	Notifier Notifier

	Interval time.Duration
	// ReloadDelay is the pause between a successful monitoring run and the
	// reload. Zero uses DefaultReloadDelay; negative reloads immediately.
	ReloadDelay time.Duration

	// DiscardStale drops a stats response when a newer one was already applied.
	// Off by default: the last response to arrive wins.
	DiscardStale bool

	Clock   Clock
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// Controller drives periodic stats refresh and monitoring invocation.
// It is safe for concurrent use.
type Controller struct {
	stats    StatsSource
	trigger  MonitoringTrigger
	display  *Display
	progress Progress
	reloader Reloader
	notifier Notifier

	interval     time.Duration
	reloadDelay  time.Duration
	discardStale bool

	clock   Clock
	log     logger.Logger
	metrics *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	ticker      Ticker
	tickerDone  chan struct{}
	reloadTimer Timer
	closed      bool
	ticks       sync.WaitGroup

	inFlight atomic.Bool

	seq         atomic.Uint64
	applyMu     sync.Mutex
	lastApplied uint64
}

// New creates a controller. Nothing runs until Start or RunMonitoring is called.
func New(opts Options) *Controller {
	c := &Controller{
		stats:        opts.Stats,
		trigger:      opts.Trigger,
		display:      opts.Display,
		progress:     opts.Progress,
		reloader:     opts.Reloader,
		notifier:     opts.Notifier,
		interval:     opts.Interval,
		reloadDelay:  opts.ReloadDelay,
		discardStale: opts.DiscardStale,
		clock:        opts.Clock,
		log:          opts.Logger,
		metrics:      opts.Metrics,
	}
	if c.display == nil {
		c.display = &Display{}
	}
	if c.progress == nil {
		c.progress = nopProgress{}
	}
	if c.reloader == nil {
		c.reloader = ReloadFunc(func() {})
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	switch {
	case c.reloadDelay == 0:
		c.reloadDelay = DefaultReloadDelay
	case c.reloadDelay < 0:
		c.reloadDelay = 0
	}
	if c.clock == nil {
		c.clock = RealClock{}
	}
	if c.log == nil {
		c.log = logger.Noop()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Interval returns the refresh period.
func (c *Controller) Interval() time.Duration { return c.interval }

// Running reports whether a monitoring run is in flight.
func (c *Controller) Running() bool { return c.inFlight.Load() }

// Close stops the refresh timer, cancels a pending reload, abandons in-flight
// requests and waits for tick goroutines to return.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopLocked()
	if c.reloadTimer != nil {
		c.reloadTimer.Stop()
		c.reloadTimer = nil
	}
	c.mu.Unlock()

	c.cancel()
	c.ticks.Wait()
}
