package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements the services.MetricsSink interface with
// prometheus collectors registered on a caller-supplied registry.
type Prometheus struct {
	applicationsCreated prometheus.Counter
	applicationsDecided *prometheus.CounterVec
	affiliatesTotal     prometheus.Counter
	loginAttempts       *prometheus.CounterVec
	riskDuration        prometheus.Histogram
}

// NewPrometheus creates the collectors and registers them
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coopcredit",
			Name:      "applications_created_total",
			Help:      "Credit applications submitted.",
		}),
		applicationsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coopcredit",
			Name:      "applications_decided_total",
			Help:      "Credit applications moved to a terminal status.",
		}, []string{"result"}),
		affiliatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coopcredit",
			Name:      "affiliates_registered_total",
			Help:      "Affiliates registered.",
		}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coopcredit",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		riskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coopcredit",
			Name:      "risk_evaluation_duration_seconds",
			Help:      "Latency of risk central evaluations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.applicationsCreated,
		m.applicationsDecided,
		m.affiliatesTotal,
		m.loginAttempts,
		m.riskDuration,
	)
	return m
}

func (m *Prometheus) ApplicationCreated() {
	m.applicationsCreated.Inc()
}

func (m *Prometheus) ApplicationApproved() {
	m.applicationsDecided.WithLabelValues("approved").Inc()
}

func (m *Prometheus) ApplicationRejected() {
	m.applicationsDecided.WithLabelValues("rejected").Inc()
}

func (m *Prometheus) AffiliateRegistered() {
	m.affiliatesTotal.Inc()
}

func (m *Prometheus) LoginAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}

func (m *Prometheus) RiskEvaluationDuration(d time.Duration) {
	m.riskDuration.Observe(d.Seconds())
}
