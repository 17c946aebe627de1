package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
// Tracks pipeline outcomes and the end-to-end processing duration.
type Metrics struct {
	VerificationsProcessed *prometheus.CounterVec
	ValidationRejections   prometheus.Counter
	FraudDetected          prometheus.Counter
	NotificationFailures   prometheus.Counter
	ProcessDuration        prometheus.Histogram
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		VerificationsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "quod_verifications_processed_total",
			Help: "Total number of verifications processed, by type and final status",
		}, []string{"type", "status"}),
		ValidationRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quod_validation_rejections_total",
			Help: "Total number of submissions rejected by image validation before persistence",
		}),
		FraudDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quod_fraud_detected_total",
			Help: "Total number of verifications with at least one fraud category detected",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quod_notification_failures_total",
			Help: "Total number of notification dispatches that did not reach the endpoint",
		}),
		ProcessDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "quod_verification_duration_seconds",
			Help:    "Duration of the full verification pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementProcessed records a completed verification with its final status.
func (m *Metrics) IncrementProcessed(verificationType, status string) {
	m.VerificationsProcessed.WithLabelValues(verificationType, status).Inc()
}

// IncrementValidationRejected records a pre-persistence validation rejection.
func (m *Metrics) IncrementValidationRejected() {
	m.ValidationRejections.Inc()
}

// IncrementFraudDetected records a fraud verdict.
func (m *Metrics) IncrementFraudDetected() {
	m.FraudDetected.Inc()
}

// IncrementNotificationFailed records a failed notification dispatch.
func (m *Metrics) IncrementNotificationFailed() {
	m.NotificationFailures.Inc()
}

// ObserveProcess records the duration of one pipeline run.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveProcess(start time.Time) {
	m.ProcessDuration.Observe(time.Since(start).Seconds())
}
