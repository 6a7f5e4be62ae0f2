package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
	domsvc "PriceCast/internal/domain/service"
	"PriceCast/pkg/util"
)

// ErrInvalidWindow is re-exported so callers of this package need not import the domain.
var ErrInvalidWindow = domsvc.ErrInvalidWindow

const (
	DefaultLookbackDays = 90
	DefaultBasePrice    = 100.0

	noiseAmplitude = 0.05
	cycleAmplitude = 0.05
	cycleFrequency = 0.2

	minVolume  = 500_000
	volumeSpan = 1_000_000
)

// SeriesSynthesizer generates a demo daily history around a catalog base price.
// It stands in for a market-data adapter behind the SeriesSource contract.
type SeriesSynthesizer struct {
	catalog domrepo.InstrumentCatalog
	rnd     domsvc.RandomSource
}

func NewSeriesSynthesizer(catalog domrepo.InstrumentCatalog, rnd domsvc.RandomSource) *SeriesSynthesizer {
	return &SeriesSynthesizer{catalog: catalog, rnd: rnd}
}

// Synthesize returns lookbackDays+1 points ending on asOf's calendar day.
// Unknown symbols are priced around DefaultBasePrice.
func (s *SeriesSynthesizer) Synthesize(symbol string, lookbackDays int, asOf time.Time) (models.Series, error) {
	if lookbackDays < 0 {
		return nil, fmt.Errorf("synthesize %s: lookback %d: %w", symbol, lookbackDays, ErrInvalidWindow)
	}
	base := s.basePrice(symbol)
	today := util.Day(asOf)

	out := make(models.Series, 0, lookbackDays+1)
	for i := lookbackDays; i >= 0; i-- {
		u := uniform(s.rnd, -noiseAmplitude, noiseAmplitude)
		price := base * (1 + u + cycleAmplitude*math.Sin(cycleFrequency*float64(i)))
		volume := int64(minVolume + s.rnd.IntN(volumeSpan))
		out = append(out, models.PricePoint{
			Date:   today.AddDate(0, 0, -i),
			Close:  price,
			Volume: volume,
			Kind:   models.KindHistorical,
		})
	}
	return out, nil
}

// History implements SeriesSource.
func (s *SeriesSynthesizer) History(_ context.Context, symbol string, lookbackDays int, asOf time.Time) (models.Series, error) {
	return s.Synthesize(symbol, lookbackDays, asOf)
}

func (s *SeriesSynthesizer) basePrice(symbol string) float64 {
	if s.catalog == nil {
		return DefaultBasePrice
	}
	if p, ok := s.catalog.BasePrice(symbol); ok && p > 0 {
		return p
	}
	return DefaultBasePrice
}

var _ domsvc.SeriesSource = (*SeriesSynthesizer)(nil)
