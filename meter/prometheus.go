package meter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ineyio/arbiter"
)

// PrometheusMeter exports arbitration counters and score distributions.
type PrometheusMeter struct {
	dispatched *prometheus.CounterVec
	exhausted  *prometheus.CounterVec
	score      *prometheus.HistogramVec
}

var _ arbiter.Meter = (*PrometheusMeter)(nil)

// NewPrometheusMeter creates the collectors under namespace and registers
// them with reg. A nil reg leaves them unregistered. Registering the same
// namespace twice on one registry panics, as with promauto.
func NewPrometheusMeter(reg prometheus.Registerer, namespace string) *PrometheusMeter {
	factory := promauto.With(reg)

	return &PrometheusMeter{
		dispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_total",
				Help:      "Total number of calls dispatched to a service",
			},
			[]string{"service"},
		),
		exhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exhausted_total",
				Help:      "Total number of calls no service had quota for",
			},
			[]string{"fallback"},
		),
		score: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_score",
				Help:      "Availability score of the winning service",
				Buckets:   []float64{0.1, 0.25, 0.5, 0.75, 1, 2, 5, 10},
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMeter) OnDispatch(e arbiter.DispatchEvent) {
	m.dispatched.WithLabelValues(e.Service).Inc()
	m.score.WithLabelValues(e.Service).Observe(e.Score)
}

func (m *PrometheusMeter) OnExhausted(e arbiter.ExhaustedEvent) {
	m.exhausted.WithLabelValues(strconv.FormatBool(e.Fallback)).Inc()
}
