// Package dashboard implements the refresh controller behind the tracker dashboard.
//
// The controller polls the backend for a stats snapshot on a fixed interval and
// pushes it into a display layer, and runs the long monitoring job on request
// with a guard that keeps at most one run in flight.
//
// # Key Components
//
//	Controller  - Owns the refresh timer and the monitoring in-flight flag
//	Display     - Maps a StatsSnapshot onto three cards and two charts
//	Presenter   - Ephemeral notifications that remove themselves after a delay
//	Clock       - Timer source; tests swap in a manual clock
//
// # Display Contract
//
// The controller never renders anything itself. It talks to small capability
// interfaces (CardSlot, Chart, Progress, Reloader, Notifier) so the same
// controller drives the Bubble Tea dashboard and the plain line printer.
// A nil card or chart means "not shown here" and is skipped silently.
//
// # Refresh Cycle
//
//  1. The ticker fires every Interval (default 30s, not drift-corrected)
//  2. Each tick fetches /api/stats in its own goroutine; ticks may overlap
//  3. On success the cards and charts are updated; on failure the error is
//     logged and nothing else happens
//
// Responses are applied last-writer-wins unless DiscardStale is set, in which
// case a response older than the newest applied one is dropped.
//
// # Monitoring
//
// RunMonitoring moves Idle -> Running -> Idle. While running it shows the
// progress indicator and calls /api/run-monitoring. Success schedules a full
// reload after ReloadDelay (default 2s). The in-flight flag is released on
// every exit path, including a panic in the trigger.
package dashboard
