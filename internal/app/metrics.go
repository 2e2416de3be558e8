package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/awmpietro/algoviz/internal/algo"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics counts generation requests. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_generate_requests_total",
				Help: "Sequence generation requests by algorithm and outcome.",
			},
			[]string{"algorithm", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoviz_generate_duration_seconds",
				Help:    "Time to validate and generate (or fetch) a sequence.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"algorithm"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(id algo.ID, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(id.String(), outcome).Inc()
	m.duration.WithLabelValues(id.String()).Observe(d.Seconds())
}
