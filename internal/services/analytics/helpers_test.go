package analytics

import (
	"time"

	"PriceCast/internal/domain/models"
)

var testAsOf = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

type fakeCatalog map[string]float64

func (c fakeCatalog) BasePrice(symbol string) (float64, bool) {
	p, ok := c[symbol]
	return p, ok
}

func (c fakeCatalog) Lookup(symbol string) (models.Instrument, bool) {
	p, ok := c[symbol]
	return models.Instrument{Symbol: symbol, BasePrice: p}, ok
}

func (c fakeCatalog) Instruments() []models.Instrument { return nil }

// fixedRand replays a constant draw.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return int(r.f * float64(n)) }

func closesSeries(closes ...float64) models.Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, models.PricePoint{Date: start.AddDate(0, 0, i), Close: c, Kind: models.KindHistorical})
	}
	return s
}
