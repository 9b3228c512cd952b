package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	geocodeCache   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sternentyp_charts_computed_total",
				Help: "Total number of chart computations by operation",
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sternentyp_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sternentyp_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		geocodeCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sternentyp_geocode_cache_total",
				Help: "Geocode cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordChart records one completed chart computation.
func (r *Recorder) RecordChart(operation string) {
	r.chartsComputed.WithLabelValues(operation).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordGeocodeCache records a geocode cache hit or miss.
func (r *Recorder) RecordGeocodeCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.geocodeCache.WithLabelValues(outcome).Inc()
}
