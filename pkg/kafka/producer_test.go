package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	assert.Error(t, err)
}

func TestNewProducer_AppliesOptions(t *testing.T) {
	p, err := NewProducer(nil,
		WithBrokers([]string{"localhost:9092"}),
		WithCompression("zstd"),
		WithRequiredAcks(1),
		WithMaxAttempts(5),
		WithBatchTimeout(10*time.Millisecond),
		WithAsync(true),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, kafka.Zstd, p.writer.Compression)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.Equal(t, 5, p.writer.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, p.writer.BatchTimeout)
	assert.True(t, p.writer.Async)
	assert.Equal(t, "zstd", p.comp)
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
	assert.Equal(t, kafka.Lz4, parseCompression("lz4"))
	assert.Equal(t, kafka.Gzip, parseCompression("gzip"))
	assert.Equal(t, kafka.Gzip, parseCompression("bogus"))
}

func TestProducerMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewProducer(reg, WithBrokers([]string{"localhost:9092"}))
	require.NoError(t, err)
	b, err := NewProducer(reg, WithBrokers([]string{"localhost:9092"}))
	require.NoError(t, err)

	a.metrics.observe("reports", "gzip", 10, time.Millisecond, nil)
	b.metrics.observe("reports", "gzip", 5, time.Millisecond, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(a.metrics.msgs.WithLabelValues("reports", "gzip", "ok")))
	assert.Equal(t, 15.0, testutil.ToFloat64(b.metrics.bytes.WithLabelValues("reports", "gzip")))
}

func TestPublish_UnreachableBrokerCountsError(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewProducer(reg,
		WithBrokers([]string{"127.0.0.1:1"}),
		WithMaxAttempts(1),
		WithWriteTimeout(200*time.Millisecond),
	)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = p.Publish(ctx, "pricecast.reports", []byte("AAPL"), map[string]int{"seed": 1})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.msgs.WithLabelValues("pricecast.reports", "gzip", "error")))
}
