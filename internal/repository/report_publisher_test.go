package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceCast/internal/domain/models"
)

type recordingProducer struct {
	topic  string
	key    []byte
	value  interface{}
	err    error
	closed bool
}

func (r *recordingProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	r.topic, r.key, r.value = topic, key, value
	return r.err
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

func TestKafkaReportPublisher_KeysBySymbol(t *testing.T) {
	rec := &recordingProducer{}
	pub := newKafkaReportPublisher(rec, "pricecast.reports", nil)

	rep := &models.Report{ID: "r-1", Symbol: "AAPL", AsOf: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, pub.Publish(context.Background(), rep))

	assert.Equal(t, "pricecast.reports", rec.topic)
	assert.Equal(t, []byte("AAPL"), rec.key)
	body, ok := rec.value.(models.ReportResponse)
	require.True(t, ok)
	assert.Equal(t, "r-1", body.ID)
	assert.Equal(t, "2025-06-15", body.AsOf)

	require.NoError(t, pub.Close())
	assert.True(t, rec.closed)
}

func TestKafkaReportPublisher_WrapsErrors(t *testing.T) {
	cause := errors.New("broker down")
	pub := newKafkaReportPublisher(&recordingProducer{err: cause}, "t", nil)

	err := pub.Publish(context.Background(), &models.Report{ID: "x", Symbol: "MSFT"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))

	assert.NoError(t, pub.Publish(context.Background(), nil))
}

func TestNoopReportPublisher(t *testing.T) {
	var p NoopReportPublisher
	assert.NoError(t, p.Publish(context.Background(), &models.Report{}))
	assert.NoError(t, p.Close())
}
