package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveAttempt(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAttempt("5xx", 20*time.Millisecond)
	m.ObserveAttempt("5xx", 10*time.Millisecond)
	m.ObserveAttempt("2xx", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Attempts.WithLabelValues("5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Attempts.WithLabelValues("2xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AttemptDuration))
}

func TestMetrics_IncrementOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementOutcome("register", "Accepted")
	m.IncrementOutcome("register", "Accepted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("register", "Accepted")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAttempt("2xx", time.Second)
	m.IncrementOutcome("register", "Accepted")
}
