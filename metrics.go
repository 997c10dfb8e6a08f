package graphql

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsSubsystem = "graphql"

	fetchTotalMetric           = "fetch_total"
	fetchDurationSecondsMetric = "fetch_duration_seconds"
)

type metrics struct {
	// fetchTotal counts fetches by outcome: ok, or the stage that failed
	// (signing, transport, decode, server, serialization).
	fetchTotal *prometheus.CounterVec

	// fetchDurationSeconds measures whole fetches, signing included.
	fetchDurationSeconds *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: metricsSubsystem,
				Name:      fetchTotalMetric,
				Help:      "Total number of GraphQL fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Subsystem: metricsSubsystem,
				Name:      fetchDurationSecondsMetric,
				Help:      "Histogram of GraphQL fetch duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"outcome"},
		),
	}
	m.fetchTotal = register(reg, m.fetchTotal).(*prometheus.CounterVec)
	m.fetchDurationSeconds = register(reg, m.fetchDurationSeconds).(*prometheus.HistogramVec)
	return m
}

// register returns the collector already registered under the same
// descriptor, if any, so several clients can share one registry. Any other
// registration error panics, as prometheus.MustRegister does.
func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

func (m *metrics) observe(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDurationSeconds.WithLabelValues(outcome).Observe(d.Seconds())
}
