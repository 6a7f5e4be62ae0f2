package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint tracks per-endpoint latency and failures of the report API.
type Endpoint struct {
	Latency *prometheus.HistogramVec
	Errors  *prometheus.CounterVec
	Cache   *prometheus.CounterVec
}

func NewEndpoint(reg prometheus.Registerer) (*Endpoint, error) {
	m := &Endpoint{
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pricecast",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of report endpoints",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pricecast",
				Subsystem: "api",
				Name:      "errors_total",
				Help:      "Errors by endpoint and kind",
			},
			[]string{"endpoint", "kind"},
		),
		Cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pricecast",
				Subsystem: "api",
				Name:      "cache_lookups_total",
				Help:      "Report cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Latency, m.Errors, m.Cache} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
		}
	}
	return m, nil
}
