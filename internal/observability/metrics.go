// Package observability exposes Prometheus metrics for the index
// computations.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the computation metrics, labeled by index name
// (spi, spei, pnp, pet, pdsi, scpdsi).
type Metrics struct {
	computations *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	seriesLength *prometheus.HistogramVec
}

// NewMetrics registers the computation metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climdex",
			Name:      "computations_total",
			Help:      "Total index computations attempted.",
		}, []string{"index"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climdex",
			Name:      "computation_failures_total",
			Help:      "Index computations rejected or failed.",
		}, []string{"index"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climdex",
			Name:      "computation_duration_seconds",
			Help:      "Wall time of index computations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"index"}),
		seriesLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climdex",
			Name:      "series_length_months",
			Help:      "Input series length in months.",
			Buckets:   prometheus.ExponentialBuckets(12, 2, 11),
		}, []string{"index"}),
	}
}

// ObserveComputation records one computation attempt and its outcome.
func (m *Metrics) ObserveComputation(index string, months int, elapsed time.Duration, err error) {
	m.computations.WithLabelValues(index).Inc()
	m.seriesLength.WithLabelValues(index).Observe(float64(months))
	m.duration.WithLabelValues(index).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(index).Inc()
	}
}
