package dashboard

import (
	"context"
	"time"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/errors"
)

// Start begins firing a refresh every interval. Calling Start again replaces
// the running timer rather than adding a second one.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.Warn("refresh not started: controller is closed")
		return
	}
	if c.ticker != nil {
		c.log.Warn("refresh already started, restarting timer")
		c.stopLocked()
	}

	t := c.clock.NewTicker(c.interval)
	done := make(chan struct{})
	c.ticker = t
	c.tickerDone = done

	go c.loop(t, done)
	c.log.Debug("auto-refresh every %s", c.interval)
}

// Stop cancels the refresh timer. No-op if none is running.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Started reports whether a refresh timer is active.
func (c *Controller) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}

func (c *Controller) stopLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.tickerDone)
	c.ticker = nil
	c.tickerDone = nil
}

func (c *Controller) loop(t Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-t.C():
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			c.ticks.Add(1)
			c.mu.Unlock()
			go func() {
				defer c.ticks.Done()
				_ = c.Refresh(c.ctx)
			}()
		}
	}
}

// Refresh performs one tick: fetch the snapshot and apply it to the display.
// Errors are logged and returned; they never reach the notifier.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.stats == nil {
		return errors.New(errors.ErrConfig, "no stats source configured", "")
	}

	seq := c.seq.Add(1)
	start := time.Now()
	snap, err := c.stats.FetchStats(ctx)
	c.metrics.Tick(time.Since(start), err)
	if err != nil {
		c.log.Error("Error refreshing stats: %s", errors.Describe(err))
		return err
	}

	if !c.apply(seq, snap) {
		c.metrics.Stale()
		c.log.Debug("discarded stale stats response #%d", seq)
		return nil
	}
	c.log.Debug("Stats refreshed successfully")
	return nil
}

// apply writes the snapshot to the display unless stale-dropping is on and a
// newer response already landed.
func (c *Controller) apply(seq uint64, snap *api.StatsSnapshot) bool {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	if c.discardStale && seq < c.lastApplied {
		return false
	}
	if seq > c.lastApplied {
		c.lastApplied = seq
	}
	c.display.Apply(snap)
	return true
}
