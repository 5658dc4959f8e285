package algebra

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records Gröbner basis computations. A nil *Metrics records
// nothing.
type Metrics struct {
	Runs     *prometheus.CounterVec
	SPairs   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "groebner",
				Name:      "runs_total",
				Help:      "Gröbner basis computations by operation and outcome",
			},
			[]string{"op", "status"},
		),
		SPairs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "groebner",
				Name:      "spairs_total",
				Help:      "S-pairs reduced during Gröbner basis computations",
			},
			[]string{"op"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "groebner",
				Name:      "duration_seconds",
				Help:      "Gröbner basis computation time in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"op"},
		),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Runs, m.SPairs, m.Duration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observe(op string, d time.Duration, pairs int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Runs.WithLabelValues(op, status).Inc()
	m.SPairs.WithLabelValues(op).Add(float64(pairs))
	m.Duration.WithLabelValues(op).Observe(d.Seconds())
}
