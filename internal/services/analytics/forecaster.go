package analytics

import (
	"fmt"
	"math"
	"time"

	"PriceCast/internal/domain/models"
	domsvc "PriceCast/internal/domain/service"
	"PriceCast/internal/services/features"
	"PriceCast/pkg/util"
)

const (
	DefaultHorizonDays = 7

	trendAmplitude = 0.02
	trendFrequency = 0.5
	shockAmplitude = 0.02

	maxConfidence   = 0.95
	confidenceDecay = 0.05
	minConfidence   = 0.6

	bandScale = 0.5

	accuracyFloor  = 0.82
	accuracySpread = 0.15
)

// ModelAccuracy draws the reported fit score in [0.82, 0.97). Callers draw it
// after the forecast so the forecast points do not depend on it.
func ModelAccuracy(rnd domsvc.RandomSource) float64 {
	return uniform(rnd, accuracyFloor, accuracyFloor+accuracySpread)
}

// ForecastGenerator projects a fan of one-step biases off the last observed close.
// Every step is relative to the anchor price, never to the previous step.
type ForecastGenerator struct {
	rnd domsvc.RandomSource
}

func NewForecastGenerator(rnd domsvc.RandomSource) *ForecastGenerator {
	return &ForecastGenerator{rnd: rnd}
}

// Forecast estimates volatility from series and projects horizonDays points.
func (g *ForecastGenerator) Forecast(series models.Series, horizonDays int, asOf time.Time) ([]models.ForecastPoint, error) {
	return g.ForecastWithVolatility(series, features.EstimateVolatility(series), horizonDays, asOf)
}

// ForecastWithVolatility projects horizonDays points using a precomputed volatility.
// An empty series anchors on DefaultBasePrice.
func (g *ForecastGenerator) ForecastWithVolatility(series models.Series, volatility float64, horizonDays int, asOf time.Time) ([]models.ForecastPoint, error) {
	if horizonDays < 1 {
		return nil, fmt.Errorf("forecast: horizon %d: %w", horizonDays, ErrInvalidWindow)
	}
	lastPrice := DefaultBasePrice
	if last, ok := series.Last(); ok {
		lastPrice = last.Close
	}
	today := util.Day(asOf)

	out := make([]models.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		step := float64(i)
		trend := trendAmplitude*math.Sin(trendFrequency*step) + uniform(g.rnd, -shockAmplitude, shockAmplitude)
		price := lastPrice * (1 + trend)
		out = append(out, models.ForecastPoint{
			Date:          today.AddDate(0, 0, i),
			Price:         price,
			Confidence:    Confidence(i),
			UpperBound:    price * (1 + bandScale*volatility),
			LowerBound:    price * (1 - bandScale*volatility),
			VolatilityPct: volatility * 100,
			Kind:          models.KindPredicted,
		})
	}
	return out, nil
}

// Confidence decays 5 points per day ahead from 0.95, floored at 0.6.
func Confidence(step int) float64 {
	return math.Max(minConfidence, maxConfidence-confidenceDecay*float64(step))
}

var _ domsvc.Forecaster = (*ForecastGenerator)(nil)
