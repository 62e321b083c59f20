package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RefreshMetrics tracks background summary recomputation.
type RefreshMetrics struct {
	refreshes prometheus.Counter
	failures  prometheus.Counter
	duration  prometheus.Histogram
}

// NewRefreshMetrics registers refresher collectors. A nil registerer yields a
// no-op instance.
func NewRefreshMetrics(reg prometheus.Registerer) *RefreshMetrics {
	if reg == nil {
		return nil
	}
	m := &RefreshMetrics{
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bebifresh_summary_refreshes_total",
			Help: "Completed dashboard summary recomputations.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bebifresh_summary_refresh_failures_total",
			Help: "Dashboard summary recomputations that returned an error.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bebifresh_summary_refresh_duration_seconds",
			Help:    "Dashboard summary recomputation latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.refreshes, m.failures, m.duration)
	return m
}

// ObserveRefresh records one recomputation.
func (m *RefreshMetrics) ObserveRefresh(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.Inc()
		return
	}
	m.refreshes.Inc()
	m.duration.Observe(elapsed.Seconds())
}
