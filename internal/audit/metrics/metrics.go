package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit pipeline.
type Metrics struct {
	EntriesCommitted *prometheus.CounterVec
	TimelineDuration prometheus.Histogram
	TimelineCache    *prometheus.CounterVec
	StreamFailures   prometheus.Counter
}

// New registers the audit metrics with the default registry. Call once per process.
func New() *Metrics {
	return &Metrics{
		EntriesCommitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contacts_audit_entries_committed_total",
			Help: "Audit entries committed, by action",
		}, []string{"action"}),
		TimelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contacts_timeline_duration_seconds",
			Help:    "Duration of timeline aggregation, excluding cache hits",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		TimelineCache: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contacts_timeline_cache_total",
			Help: "Timeline cache lookups, by result",
		}, []string{"result"}),
		StreamFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contacts_audit_stream_failures_total",
			Help: "Committed audit entries that could not be published to the event stream",
		}),
	}
}

func (m *Metrics) IncrementCommitted(action string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.EntriesCommitted.WithLabelValues(action).Add(float64(n))
}

// ObserveTimeline records the duration of a timeline build.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTimeline(start time.Time) {
	if m == nil {
		return
	}
	m.TimelineDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.TimelineCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.TimelineCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) IncrementStreamFailures(n int) {
	if m == nil || n == 0 {
		return
	}
	m.StreamFailures.Add(float64(n))
}
