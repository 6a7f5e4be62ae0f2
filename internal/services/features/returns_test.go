package features

import (
	"math"
	"testing"
	"time"

	"PriceCast/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(closes ...float64) models.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, models.PricePoint{Date: start.AddDate(0, 0, i), Close: c, Kind: models.KindHistorical})
	}
	return s
}

func TestComputeLogReturns(t *testing.T) {
	assert.Nil(t, ComputeLogReturns([]float64{100}))

	got := ComputeLogReturns([]float64{100, 110, 0, 121})
	require.Len(t, got, 3)
	assert.InDelta(t, math.Log(1.1), got[0], 1e-12)
	assert.Equal(t, 0.0, got[1], "non-positive close contributes a zero return")
	assert.Equal(t, 0.0, got[2])
}

func TestComputeSimpleReturns(t *testing.T) {
	got := ComputeSimpleReturns([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)
}

func TestMeanStdDev(t *testing.T) {
	mean, std := MeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5, mean, 1e-12)
	assert.InDelta(t, 2, std, 1e-12)

	mean, std = MeanStdDev([]float64{0.01, 0.01, 0.01})
	assert.Equal(t, 0.01, mean)
	assert.Equal(t, 0.0, std)

	mean, std = MeanStdDev(nil)
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(std))
}

func TestEstimateVolatilityShortSeries(t *testing.T) {
	assert.Equal(t, DefaultVolatility, EstimateVolatility(nil))
	assert.Equal(t, DefaultVolatility, EstimateVolatility(seriesOf(100)))
}

func TestEstimateVolatilityConstantSeries(t *testing.T) {
	assert.Equal(t, 0.0, EstimateVolatility(seriesOf(100, 100, 100)))
}

func TestEstimateVolatilityPopulationVariance(t *testing.T) {
	s := seriesOf(100, 110, 99)
	r1, r2 := math.Log(1.1), math.Log(0.9)
	mean := (r1 + r2) / 2
	want := math.Sqrt(((r1-mean)*(r1-mean) + (r2-mean)*(r2-mean)) / 2)

	got := EstimateVolatility(s)
	assert.InDelta(t, want, got, 1e-12)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestAnnualize(t *testing.T) {
	assert.InDelta(t, 0.01*math.Sqrt(252), Annualize(0.01, TradingDaysPerYear), 1e-12)
	assert.Equal(t, 0.0, Annualize(0.01, 0))
}
