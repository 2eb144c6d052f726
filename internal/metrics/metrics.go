package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for visitor registration calls.
type Metrics struct {
	Attempts        *prometheus.CounterVec
	Outcomes        *prometheus.CounterVec
	AttemptDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Attempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_client_attempts_total",
			Help: "HTTP attempts issued to the visitor endpoint, by result class",
		}, []string{"result"}),
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_client_outcomes_total",
			Help: "Terminal outcomes of visitor client calls",
		}, []string{"operation", "status"}),
		AttemptDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "visitor_client_attempt_duration_seconds",
			Help:    "Latency of single HTTP attempts to the visitor endpoint",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveAttempt records one HTTP attempt. result is a status class such as
// "2xx", "5xx" or "transport_error".
func (m *Metrics) ObserveAttempt(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(result).Inc()
	m.AttemptDuration.Observe(d.Seconds())
}

// IncrementOutcome counts a terminal outcome of operation.
func (m *Metrics) IncrementOutcome(operation, status string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(operation, status).Inc()
}
