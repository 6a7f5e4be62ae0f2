package analytics

import (
	"errors"
	"fmt"

	"PriceCast/internal/domain/models"

	"github.com/shopspring/decimal"
)

// ErrNonPositivePrice guards percentage math against a zero denominator.
var ErrNonPositivePrice = errors.New("current price must be positive")

// DefaultInvestmentAmounts are the principal sizes valued in a report.
var DefaultInvestmentAmounts = []float64{1000, 5000, 10000, 25000}

// DefaultAllocations is the static portfolio split suggestion.
func DefaultAllocations() []models.Allocation {
	return []models.Allocation{
		{Name: "Conservative", Percent: 60},
		{Name: "Moderate", Percent: 25},
		{Name: "Aggressive", Percent: 15},
	}
}

// PriceChange returns predicted-current and its percentage of current.
func PriceChange(current, predicted float64) (float64, float64, error) {
	if current <= 0 {
		return 0, 0, fmt.Errorf("price change: %w", ErrNonPositivePrice)
	}
	diff := predicted - current
	return diff, diff / current * 100, nil
}

// periods per year the next-day change is compounded over, linearly
const annualPeriods = 12

// ExpectedAnnualReturnPct scales a price change percentage to a yearly figure.
func ExpectedAnnualReturnPct(changePct float64) float64 {
	return changePct * annualPeriods
}

// BuildScenarios values each principal bought at current and marked at predicted.
// The current value of a position equals its principal: it is opened at current.
func BuildScenarios(amounts []float64, current, predicted float64) ([]models.InvestmentScenario, error) {
	_, pct, err := PriceChange(current, predicted)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	cur := decimal.NewFromFloat(current)
	pred := decimal.NewFromFloat(predicted)

	out := make([]models.InvestmentScenario, 0, len(amounts))
	for _, a := range amounts {
		principal := decimal.NewFromFloat(a)
		shares := principal.Div(cur)
		predictedValue := shares.Mul(pred).Round(2)
		out = append(out, models.InvestmentScenario{
			Investment:     principal,
			Shares:         shares.Round(4),
			CurrentValue:   principal,
			PredictedValue: predictedValue,
			Profit:         predictedValue.Sub(principal),
			ProfitPct:      pct,
		})
	}
	return out, nil
}
