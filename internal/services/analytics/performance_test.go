package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDrawdownKnownSequence(t *testing.T) {
	assert.InDelta(t, (120.0-80.0)/120.0, MaxDrawdown([]float64{100, 110, 90, 120, 80}), 1e-12)
}

func TestMaxDrawdownShortInput(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
	assert.Equal(t, 0.0, MaxDrawdown([]float64{42}))
}

func TestMaxDrawdownMonotonicRise(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown([]float64{1, 2, 3, 4}))
}

func TestMaxDrawdownScaleInvariant(t *testing.T) {
	prices := []float64{100, 104, 97, 110, 93, 101, 120, 88}
	base := MaxDrawdown(prices)
	for _, k := range []float64{0.01, 3, 1250} {
		scaled := make([]float64, len(prices))
		for i, p := range prices {
			scaled[i] = p * k
		}
		assert.InDelta(t, base, MaxDrawdown(scaled), 1e-12)
	}
	assert.GreaterOrEqual(t, base, 0.0)
	assert.Less(t, base, 1.0)
}

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, 0.005}
	mean := (0.01 - 0.02 + 0.015 + 0.005) / 4
	var ss float64
	for _, r := range returns {
		ss += (r - mean) * (r - mean)
	}
	want := (mean - 0.02/252) / math.Sqrt(ss/4)
	assert.InDelta(t, want, SharpeRatio(returns, DefaultRiskFreeRate), 1e-9)
}

func TestSharpeRatioDegenerateReturns(t *testing.T) {
	got := SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02)
	assert.True(t, math.IsInf(got, 0) || math.IsNaN(got), "got %v", got)

	assert.True(t, math.IsNaN(SharpeRatio(nil, 0.02)))
}

func TestSummarize(t *testing.T) {
	s := closesSeries(100, 110, 90, 120, 80)
	sum := Summarize(s, DefaultRiskFreeRate)
	assert.InDelta(t, 1.0/3.0, sum.MaxDrawdown, 1e-12)
	assert.False(t, math.IsNaN(sum.SharpeRatio))
}
