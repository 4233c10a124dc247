package persistence

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks unit-of-work flushes.
type Metrics struct {
	FlushDuration   prometheus.Histogram
	FlushFailures   prometheus.Counter
	EntitiesWritten *prometheus.CounterVec
}

// NewMetrics registers the flush metrics with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		FlushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contacts_flush_duration_seconds",
			Help:    "Duration of unit-of-work flushes, including pre-commit hooks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FlushFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contacts_flush_failures_total",
			Help: "Total number of flushes rolled back",
		}),
		EntitiesWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contacts_entities_written_total",
			Help: "Entities written by committed flushes, by operation",
		}, []string{"op"}),
	}
}

func (m *Metrics) observeFlush(start time.Time) {
	if m == nil {
		return
	}
	m.FlushDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) incrementFailure() {
	if m == nil {
		return
	}
	m.FlushFailures.Inc()
}

func (m *Metrics) addWritten(ev *FlushEvent) {
	if m == nil {
		return
	}
	m.EntitiesWritten.WithLabelValues("insert").Add(float64(len(ev.Inserts) + len(ev.staged)))
	m.EntitiesWritten.WithLabelValues("update").Add(float64(len(ev.Updates)))
	m.EntitiesWritten.WithLabelValues("delete").Add(float64(len(ev.Deletes)))
}
