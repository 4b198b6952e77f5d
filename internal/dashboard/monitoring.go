package dashboard

import (
	"context"

	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/0xpinara/company-tracker/internal/metrics"
)

// User-facing monitoring messages.
const (
	MsgAlreadyRunning   = "Monitoring is already running..."
	MsgMonitoringDone   = "Monitoring completed successfully! Found new mentions."
	MsgRefreshing       = "Refreshing data..."
	msgFailurePrefix    = "Error: "
	msgRequestErrPrefix = "Error running monitoring: "
)

// Outcome is how a RunMonitoring call ended.
type Outcome int

const (
	OutcomeRejected  Outcome = iota // another run was in flight
	OutcomeSucceeded                // server reported success, reload scheduled
	OutcomeFailed                   // server reported success=false
	OutcomeErrored                  // transport or decode error
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool { return o == OutcomeSucceeded }

// RunMonitoring triggers one monitoring run and blocks until it finishes.
// If a run is already in flight it only posts a warning.
func (c *Controller) RunMonitoring(ctx context.Context) Outcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.metrics.Rejected()
		c.notifier.Notify(KindWarning, MsgAlreadyRunning)
		return OutcomeRejected
	}
	defer c.inFlight.Store(false)

	if c.trigger == nil {
		c.notifier.Notify(KindDanger, msgRequestErrPrefix+"no monitoring endpoint configured")
		return OutcomeErrored
	}

	c.log.Info("monitoring run started")
	c.progress.Show()
	hidden := false
	defer func() {
		if !hidden {
			c.progress.Hide()
		}
	}()

	res, err := c.trigger.RunMonitoring(ctx)
	if err == nil && res == nil {
		err = errors.New(errors.ErrMonitor, "empty monitoring response", "")
	}

	c.progress.Hide()
	hidden = true

	if err != nil {
		c.metrics.MonitoringRun(metrics.ResultError)
		c.log.Error("monitoring request failed: %s", errors.Describe(err))
		c.notifier.Notify(KindDanger, msgRequestErrPrefix+errors.Describe(err))
		return OutcomeErrored
	}

	if !res.Success {
		c.metrics.MonitoringRun(metrics.ResultFailure)
		c.log.Warn("monitoring reported failure: %s", res.Message)
		c.notifier.Notify(KindDanger, msgFailurePrefix+res.Message)
		return OutcomeFailed
	}

	c.metrics.MonitoringRun(metrics.ResultSuccess)
	c.log.Info("monitoring run completed")
	c.notifier.Notify(KindSuccess, MsgMonitoringDone)
	c.scheduleReload()
	return OutcomeSucceeded
}

// RefreshData posts an info notification and reloads right away.
func (c *Controller) RefreshData() {
	c.notifier.Notify(KindInfo, MsgRefreshing)
	c.reloader.Reload()
}

func (c *Controller) scheduleReload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.reloadTimer != nil {
		c.reloadTimer.Stop()
	}
	c.reloadTimer = c.clock.AfterFunc(c.reloadDelay, func() {
		c.mu.Lock()
		c.reloadTimer = nil
		c.mu.Unlock()
		c.reloader.Reload()
	})
}

// ReloadPending reports whether a post-monitoring reload is scheduled.
func (c *Controller) ReloadPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadTimer != nil
}
