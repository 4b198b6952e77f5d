// Package metrics provides Prometheus metrics for the dashboard controller.
// A nil *Metrics is valid everywhere and records nothing, so callers that
// don't serve /metrics can pass nil.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitoring run outcomes used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Metrics holds the controller's counters and histograms.
type Metrics struct {
	RefreshTicks       prometheus.Counter   // Ticks fired, including the manual ones
	RefreshFailures    prometheus.Counter   // Ticks whose fetch failed
	RefreshStale       prometheus.Counter   // Responses dropped because a newer one was applied
	RefreshDuration    prometheus.Histogram // Stats fetch latency
	MonitoringRuns     *prometheus.CounterVec
	MonitoringRejected prometheus.Counter // Invocations refused because one was in flight

	registry *prometheus.Registry
}

// New creates metrics on a fresh registry, isolated from the global one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	m.registry = reg
	return m
}

// NewWithRegistry creates metrics registered on the given registerer.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		RefreshTicks: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracker_refresh_ticks_total",
			Help: "Total number of stats refresh ticks",
		}),
		RefreshFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracker_refresh_failures_total",
			Help: "Total number of stats refresh ticks that failed",
		}),
		RefreshStale: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracker_refresh_stale_total",
			Help: "Total number of stats responses discarded as stale",
		}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_refresh_duration_seconds",
			Help:    "Stats fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		MonitoringRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_monitoring_runs_total",
			Help: "Total number of monitoring runs by result",
		}, []string{"result"}),
		MonitoringRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracker_monitoring_rejected_total",
			Help: "Total number of monitoring invocations rejected because one was already running",
		}),
	}
}

// Tick records a refresh tick and its outcome.
func (m *Metrics) Tick(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.RefreshTicks.Inc()
	m.RefreshDuration.Observe(d.Seconds())
	if err != nil {
		m.RefreshFailures.Inc()
	}
}

// Stale records a discarded out-of-order response.
func (m *Metrics) Stale() {
	if m == nil {
		return
	}
	m.RefreshStale.Inc()
}

// MonitoringRun records a finished monitoring run.
func (m *Metrics) MonitoringRun(result string) {
	if m == nil {
		return
	}
	m.MonitoringRuns.WithLabelValues(result).Inc()
}

// Rejected records a monitoring invocation refused by the in-flight guard.
func (m *Metrics) Rejected() {
	if m == nil {
		return
	}
	m.MonitoringRejected.Inc()
}

// Handler returns an HTTP handler exposing these metrics. Metrics built with
// NewWithRegistry serve the default gatherer.
func (m *Metrics) Handler() http.Handler {
	if m != nil && m.registry != nil {
		return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
