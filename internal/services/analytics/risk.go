package analytics

import (
	"math"

	"PriceCast/internal/domain/models"
)

const (
	highRiskThreshold   = 0.03
	mediumRiskThreshold = 0.02

	// one-sided 95% z-score under a normal approximation
	zScore95 = 1.65

	riskScoreScale = 200
	maxRiskScore   = 10

	stopLossRatio = 0.95

	// share of volatility attributed to downside moves
	downsideRatio = 0.7
)

// Assessment is a price-independent risk classification.
type Assessment struct {
	Volatility float64
	Tier       models.RiskTier
	Score      int
}

// Classify maps volatility to a tier. Thresholds are exclusive on the lower side:
// 0.03 is Medium and 0.02 is Low.
func Classify(volatility float64) Assessment {
	tier := models.RiskLow
	switch {
	case volatility > highRiskThreshold:
		tier = models.RiskHigh
	case volatility > mediumRiskThreshold:
		tier = models.RiskMedium
	}
	return Assessment{Volatility: volatility, Tier: tier, Score: RiskScore(volatility)}
}

// ValueAtRisk95 is the one-day 95% loss estimate for a position at currentPrice.
func (a Assessment) ValueAtRisk95(currentPrice float64) float64 {
	return currentPrice * a.Volatility * zScore95
}

// Profile prices the assessment at currentPrice.
func (a Assessment) Profile(currentPrice float64) models.RiskProfile {
	return models.RiskProfile{
		Volatility:    a.Volatility,
		Tier:          a.Tier,
		ValueAtRisk95: a.ValueAtRisk95(currentPrice),
		Score:         a.Score,
		StopLoss:      StopLoss(currentPrice),

		DownsideDeviation: DownsideDeviation(a.Volatility),
	}
}

// DownsideDeviation approximates the downside share of daily volatility.
func DownsideDeviation(volatility float64) float64 {
	return volatility * downsideRatio
}

// RiskScore maps volatility onto 0..10.
func RiskScore(volatility float64) int {
	s := int(math.Round(volatility * riskScoreScale))
	if s > maxRiskScore {
		return maxRiskScore
	}
	if s < 0 {
		return 0
	}
	return s
}

// StopLoss suggests an exit 5% below currentPrice.
func StopLoss(currentPrice float64) float64 {
	return currentPrice * stopLossRatio
}
