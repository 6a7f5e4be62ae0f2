package models

// RiskTier is the discrete bucket a volatility value falls into.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// RiskProfile is the priced view of a risk assessment.
type RiskProfile struct {
	Volatility    float64
	Tier          RiskTier
	ValueAtRisk95 float64
	Score         int // 0..10
	StopLoss      float64

	DownsideDeviation float64
}

// PerformanceSummary holds risk-adjusted performance of a history.
// SharpeRatio is non-finite when the returns have zero variance.
type PerformanceSummary struct {
	SharpeRatio float64
	MaxDrawdown float64
}
