package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordReport("AAPL")
	r.RecordReport("AAPL")
	r.RecordError("source")
	r.RecordLastPrice("AAPL", 151.25)
	r.RecordVolatility("AAPL", 0.021)
	r.RecordLatency("report.build", 0.004)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reportsBuilt.WithLabelValues("AAPL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("source")))
	assert.Equal(t, 151.25, testutil.ToFloat64(r.lastPrice.WithLabelValues("AAPL")))
	assert.Equal(t, 0.021, testutil.ToFloat64(r.volatility.WithLabelValues("AAPL")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}
