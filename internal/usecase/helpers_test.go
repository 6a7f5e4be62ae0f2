package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/repository"
)

var testAsOf = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testAsOf }

func newTestBuilder(opts ...BuilderOption) *ReportBuilder {
	catalog := repository.NewStaticCatalog(repository.DefaultInstruments())
	opts = append([]BuilderOption{WithClock(fixedClock)}, opts...)
	return NewReportBuilder(catalog, SyntheticSources(catalog), opts...)
}

type staticSource struct {
	series models.Series
	err    error
}

func (s staticSource) History(context.Context, string, int, time.Time) (models.Series, error) {
	return s.series, s.err
}

// failingFor errors for one symbol and synthesizes flat prices for the rest.
type failingFor struct{ symbol string }

func (f failingFor) History(_ context.Context, symbol string, lookback int, asOf time.Time) (models.Series, error) {
	if symbol == f.symbol {
		return nil, errors.New("no data")
	}
	out := make(models.Series, 0, lookback+1)
	for i := lookback; i >= 0; i-- {
		out = append(out, models.PricePoint{Date: asOf.AddDate(0, 0, -i), Close: 50, Kind: models.KindHistorical})
	}
	return out, nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	reports []*models.Report
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, r *models.Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, r)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type countingMetrics struct {
	mu      sync.Mutex
	reports int
	errors  map[string]int
	latency int
}

func newCountingMetrics() *countingMetrics { return &countingMetrics{errors: map[string]int{}} }

func (m *countingMetrics) RecordReport(string) {
	m.mu.Lock()
	m.reports++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordLastPrice(string, float64)  {}
func (m *countingMetrics) RecordVolatility(string, float64) {}

func (m *countingMetrics) RecordLatency(string, float64) {
	m.mu.Lock()
	m.latency++
	m.mu.Unlock()
}
