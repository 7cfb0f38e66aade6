package metrics

import "github.com/prometheus/client_golang/prometheus"

// FormMetrics exposes counters/histograms for form submissions, outbound
// notifications and the hero copy optimizer.
type FormMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	wizardStepsTotal *prometheus.CounterVec
	optimizerLatency *prometheus.HistogramVec
}

func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "favfare",
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"form", "outcome"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "favfare",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Total outbound notification attempts",
		}, []string{"kind", "status"}),
		wizardStepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "favfare",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Booking wizard transitions by action and result",
		}, []string{"action", "result"}),
		optimizerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "favfare",
			Subsystem: "optimizer",
			Name:      "latency_seconds",
			Help:      "Latency of hero copy optimizer runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveriesTotal, m.wizardStepsTotal, m.optimizerLatency)
	return m
}

func (m *FormMetrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
}

func (m *FormMetrics) ObserveDelivery(kind string, ok bool) {
	if m == nil {
		return
	}
	status := "sent"
	if !ok {
		status = "failed"
	}
	m.deliveriesTotal.WithLabelValues(kind, status).Inc()
}

func (m *FormMetrics) ObserveWizard(action, result string) {
	if m == nil {
		return
	}
	m.wizardStepsTotal.WithLabelValues(action, result).Inc()
}

func (m *FormMetrics) ObserveOptimizer(status string, seconds float64) {
	if m == nil {
		return
	}
	m.optimizerLatency.WithLabelValues(status).Observe(seconds)
}
