package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SubmissionMetrics records order submission outcomes.
type SubmissionMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
}

// NewSubmissionMetrics registers the submission metrics on the provided registerer.
func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	if reg == nil {
		return &SubmissionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submission_duration_seconds",
		Help:    "Duration of order submission attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_submission_success_total",
		Help: "Order submissions acknowledged by the upstream API.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submission_failure_total",
		Help: "Failed order submission attempts.",
	}, []string{"reason"})
	reg.MustRegister(duration, success, failure)
	return &SubmissionMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the attempt duration for the given outcome.
func (m *SubmissionMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (m *SubmissionMetrics) IncSuccess() {
	if m == nil || m.success == nil {
		return
	}
	m.success.Inc()
}

// IncFailure increments the failure counter for the named reason.
func (m *SubmissionMetrics) IncFailure(reason string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
