package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is a catalog entry.
type Instrument struct {
	Symbol    string
	Name      string
	BasePrice float64
}

// InvestmentScenario values a hypothetical position opened at the current price.
type InvestmentScenario struct {
	Investment     decimal.Decimal
	Shares         decimal.Decimal
	CurrentValue   decimal.Decimal
	PredictedValue decimal.Decimal
	Profit         decimal.Decimal
	ProfitPct      float64
}

// Allocation is a suggested portfolio split bucket.
type Allocation struct {
	Name    string
	Percent int
}

// Report is the consolidated output of one pipeline run.
// Note: no transport (json/http) concerns here.
type Report struct {
	ID           string
	Symbol       string
	Name         string
	AsOf         time.Time
	Seed         uint64
	LookbackDays int
	HorizonDays  int

	History  Series
	Forecast []ForecastPoint

	Volatility           float64
	AnnualizedVolatility float64
	Risk                 RiskProfile
	Performance          PerformanceSummary

	CurrentPrice   float64
	PredictedPrice float64
	PriceChange    float64
	PriceChangePct float64

	// BreakEvenPrice is the entry price a new position must recover.
	BreakEvenPrice          float64
	ExpectedAnnualReturnPct float64
	ModelAccuracy           float64

	Scenarios   []InvestmentScenario
	Allocations []Allocation

	GeneratedAt time.Time
}
