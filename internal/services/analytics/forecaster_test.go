package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/services/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastShapeAndBands(t *testing.T) {
	hist, err := NewSeriesSynthesizer(fakeCatalog{"TSLA": 200}, NewRand(3)).Synthesize("TSLA", 90, testAsOf)
	require.NoError(t, err)

	for _, h := range []int{1, DefaultHorizonDays, 30} {
		pts, err := NewForecastGenerator(NewRand(11)).Forecast(hist, h, testAsOf)
		require.NoError(t, err)
		require.Len(t, pts, h)

		for i, p := range pts {
			assert.LessOrEqual(t, p.LowerBound, p.Price)
			assert.LessOrEqual(t, p.Price, p.UpperBound)
			assert.GreaterOrEqual(t, p.Confidence, 0.6)
			assert.LessOrEqual(t, p.Confidence, 0.95)
			assert.Equal(t, models.KindPredicted, p.Kind)
			assert.Equal(t, time.Date(2025, 6, 15+i+1, 0, 0, 0, 0, time.UTC), p.Date)
			if i > 0 {
				assert.LessOrEqual(t, p.Confidence, pts[i-1].Confidence)
				assert.True(t, p.Date.After(pts[i-1].Date))
			}
		}
	}
}

func TestForecastIsAFanOffTheLastClose(t *testing.T) {
	// Float64()=0.5 zeroes the stochastic term.
	hist := closesSeries(90, 95, 100)
	vol := 0.04
	pts, err := NewForecastGenerator(fixedRand{f: 0.5}).ForecastWithVolatility(hist, vol, 4, testAsOf)
	require.NoError(t, err)
	for idx, p := range pts {
		i := float64(idx + 1)
		want := 100 * (1 + 0.02*math.Sin(0.5*i))
		assert.InDelta(t, want, p.Price, 1e-9)
		assert.InDelta(t, want*1.02, p.UpperBound, 1e-9)
		assert.InDelta(t, want*0.98, p.LowerBound, 1e-9)
		assert.InDelta(t, 4.0, p.VolatilityPct, 1e-12)
	}
}

func TestForecastUsesEstimatedVolatility(t *testing.T) {
	hist := closesSeries(100, 103, 99, 104, 101)
	pts, err := NewForecastGenerator(NewRand(5)).Forecast(hist, 3, testAsOf)
	require.NoError(t, err)
	want := features.EstimateVolatility(hist) * 100
	for _, p := range pts {
		assert.InDelta(t, want, p.VolatilityPct, 1e-12)
	}
}

func TestForecastEmptySeriesAnchorsOnDefault(t *testing.T) {
	pts, err := NewForecastGenerator(fixedRand{f: 0.5}).Forecast(nil, 1, testAsOf)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.InDelta(t, DefaultBasePrice*(1+0.02*math.Sin(0.5)), pts[0].Price, 1e-9)
	assert.InDelta(t, features.DefaultVolatility*100, pts[0].VolatilityPct, 1e-12)
}

func TestForecastRejectsBadHorizon(t *testing.T) {
	g := NewForecastGenerator(NewRand(1))
	for _, h := range []int{0, -3} {
		_, err := g.Forecast(closesSeries(100, 101), h, testAsOf)
		assert.True(t, errors.Is(err, ErrInvalidWindow))
	}
}

func TestForecastDeterministicUnderSeed(t *testing.T) {
	hist := closesSeries(100, 101, 102, 99)
	a, err := NewForecastGenerator(NewRand(2024)).Forecast(hist, 7, testAsOf)
	require.NoError(t, err)
	b, err := NewForecastGenerator(NewRand(2024)).Forecast(hist, 7, testAsOf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewForecastGenerator(NewRand(2025)).Forecast(hist, 7, testAsOf)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestConfidenceSchedule(t *testing.T) {
	assert.InDelta(t, 0.9, Confidence(1), 1e-12)
	assert.InDelta(t, 0.65, Confidence(6), 1e-12)
	assert.InDelta(t, 0.6, Confidence(7), 1e-12)
	assert.Equal(t, 0.6, Confidence(8))
	assert.Equal(t, 0.6, Confidence(100))
}

func TestModelAccuracyRange(t *testing.T) {
	assert.InDelta(t, 0.82, ModelAccuracy(fixedRand{0}), 1e-12)
	assert.InDelta(t, 0.895, ModelAccuracy(fixedRand{0.5}), 1e-12)
	assert.Less(t, ModelAccuracy(fixedRand{0.999999}), 0.97)
}
