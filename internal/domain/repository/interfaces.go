package repository

import (
	"context"

	"PriceCast/internal/domain/models"
)

// InstrumentCatalog resolves symbols to catalog entries.
type InstrumentCatalog interface {
	BasePrice(symbol string) (float64, bool)
	Lookup(symbol string) (models.Instrument, bool)
	Instruments() []models.Instrument
}

// ReportPublisher ships finished reports to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, r *models.Report) error
	Close() error
}

type Metrics interface {
	RecordReport(symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordVolatility(symbol string, vol float64)
	RecordLatency(op string, seconds float64)
}
