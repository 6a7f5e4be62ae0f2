package analytics

import (
	"PriceCast/internal/domain/models"
	"PriceCast/internal/services/features"
)

// DefaultRiskFreeRate is the annual rate subtracted from daily mean returns.
const DefaultRiskFreeRate = 0.02

// SharpeRatio is (mean - riskFreeRate/252) / population std dev of returns.
// Zero-variance or empty input yields a non-finite value; callers must check.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	mean, std := features.MeanStdDev(returns)
	return (mean - riskFreeRate/features.TradingDaysPerYear) / std
}

// MaxDrawdown is the largest peak-to-trough decline as a fraction of the peak.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) <= 1 {
		return 0
	}
	maxDD := 0.0
	peak := prices[0]
	for _, p := range prices[1:] {
		if p > peak {
			peak = p
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Summarize computes the Sharpe ratio on simple daily returns and the max drawdown on closes.
func Summarize(series models.Series, riskFreeRate float64) models.PerformanceSummary {
	closes := series.Closes()
	return models.PerformanceSummary{
		SharpeRatio: SharpeRatio(features.ComputeSimpleReturns(closes), riskFreeRate),
		MaxDrawdown: MaxDrawdown(closes),
	}
}
