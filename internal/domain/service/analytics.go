package service

import (
	"context"
	"time"

	"PriceCast/internal/domain/models"
)

// RandomSource is the only source of randomness the pipeline draws from.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// SeriesSource produces the daily history a report is built on.
type SeriesSource interface {
	History(ctx context.Context, symbol string, lookbackDays int, asOf time.Time) (models.Series, error)
}

// Forecaster projects forecast points from a history and its volatility.
type Forecaster interface {
	ForecastWithVolatility(series models.Series, volatility float64, horizonDays int, asOf time.Time) ([]models.ForecastPoint, error)
}
