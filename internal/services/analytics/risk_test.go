package analytics

import (
	"testing"

	"PriceCast/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTiers(t *testing.T) {
	cases := []struct {
		vol  float64
		want models.RiskTier
	}{
		{0, models.RiskLow},
		{0.01, models.RiskLow},
		{0.02, models.RiskLow},
		{0.025, models.RiskMedium},
		{0.03, models.RiskMedium},
		{0.035, models.RiskHigh},
		{0.5, models.RiskHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.vol).Tier, "vol=%v", tc.vol)
	}
}

func TestValueAtRisk95(t *testing.T) {
	a := Classify(0.02)
	assert.InDelta(t, 150*0.02*1.65, a.ValueAtRisk95(150), 1e-12)
	assert.Equal(t, 0.0, Classify(0).ValueAtRisk95(150))
}

func TestRiskScore(t *testing.T) {
	assert.Equal(t, 0, RiskScore(0))
	assert.Equal(t, 2, RiskScore(0.01))
	assert.Equal(t, 5, RiskScore(0.025))
	assert.Equal(t, 10, RiskScore(0.05))
	assert.Equal(t, 10, RiskScore(0.4))
}

func TestProfile(t *testing.T) {
	p := Classify(0.035).Profile(200)
	assert.Equal(t, models.RiskHigh, p.Tier)
	assert.InDelta(t, 200*0.035*1.65, p.ValueAtRisk95, 1e-12)
	assert.InDelta(t, 190, p.StopLoss, 1e-12)
	assert.Equal(t, 7, p.Score)
}

func TestProfile_DownsideDeviation(t *testing.T) {
	p := Classify(0.02).Profile(100)
	assert.InDelta(t, 0.014, p.DownsideDeviation, 1e-12)
	assert.Zero(t, DownsideDeviation(0))
}
