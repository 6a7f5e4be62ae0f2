package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricecast"

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportsBuilt *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	volatility   *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// NewWithRegistry registers the collectors on reg. Each call needs a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		reportsBuilt: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_built_total",
				Help:      "Total number of reports built",
			},
			[]string{"symbol"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_price",
				Help:      "Last close seen for a symbol",
			},
			[]string{"symbol"},
		),
		volatility: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "volatility",
				Help:      "Last daily volatility estimate for a symbol",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "pricecast_operation_duration_seconds",
				Help: "Duration of operations in seconds",
				// report builds run in well under a millisecond up to a ClickHouse round trip
				Buckets: prometheus.ExponentialBuckets(0.0005, 2.5, 10),
			},
			[]string{"operation"},
		),
	}
}

// RecordReport counts a finished report.
func (r *Recorder) RecordReport(symbol string) {
	r.reportsBuilt.WithLabelValues(symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

func (r *Recorder) RecordVolatility(symbol string, vol float64) {
	r.volatility.WithLabelValues(symbol).Set(vol)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
