package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance engine.
type Metrics struct {
	// Per-check latencies by regulatory domain
	CheckLatency *prometheus.HistogramVec

	// Verdicts by overall status
	VerdictStatus *prometheus.CounterVec

	// Overall evaluation latency including the consent lookup
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all compliance engine metrics
// registered on the default registry.
func New() *Metrics {
	return &Metrics{
		CheckLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mintgate_compliance_check_duration_seconds",
			Help:    "Duration of individual compliance checks by domain",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"domain"}),

		VerdictStatus: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mintgate_compliance_verdicts_total",
			Help: "Total compliance verdicts by overall status",
		}, []string{"status"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mintgate_compliance_evaluate_duration_seconds",
			Help:    "Duration of full compliance evaluations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveCheckLatency records the duration of one domain check.
func (m *Metrics) ObserveCheckLatency(domain string, d time.Duration) {
	if m != nil {
		m.CheckLatency.WithLabelValues(domain).Observe(d.Seconds())
	}
}

// IncrementVerdict records a verdict outcome.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.VerdictStatus.WithLabelValues(status).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
