package playback

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver exports playback activity as Prometheus metrics.
type MetricsObserver struct {
	steps    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	sessions *prometheus.CounterVec
}

// NewMetricsObserver registers its collectors with reg and panics if they
// are already registered.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	m := &MetricsObserver{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_playback_steps_total",
				Help: "Steps applied to a sink, by algorithm and step kind.",
			},
			[]string{"algorithm", "kind"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoviz_playback_apply_seconds",
				Help:    "Time spent in Sink.Apply per step.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"algorithm"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_playback_session_transitions_total",
				Help: "Playback session status transitions.",
			},
			[]string{"algorithm", "status"},
		),
	}
	reg.MustRegister(m.steps, m.latency, m.sessions)
	return m
}

func (m *MetricsObserver) ObserveStep(ev StepEvent) {
	m.steps.WithLabelValues(ev.Algorithm, ev.Step.Kind.String()).Inc()
	m.latency.WithLabelValues(ev.Algorithm).Observe(ev.Duration.Seconds())
}

func (m *MetricsObserver) ObserveSession(ev SessionEvent) {
	m.sessions.WithLabelValues(ev.Algorithm, ev.Status.String()).Inc()
}
