package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"PriceCast/pkg/util"
)

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Lookback int    `query:"lookback" json:"lookback" default:"90" validate:"gte=0,lte=3650"`
	Seed     string `query:"seed" json:"seed" validate:"omitempty,numeric"`
	AsOf     string `query:"as_of" json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

type ForecastRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Lookback int    `query:"lookback" json:"lookback" default:"90" validate:"gte=0,lte=3650"`
	Horizon  int    `query:"horizon" json:"horizon" default:"7" validate:"gte=1,lte=365"`
	Seed     string `query:"seed" json:"seed" validate:"omitempty,numeric"`
	AsOf     string `query:"as_of" json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

type ReportRequest struct {
	Symbol       string  `query:"symbol" json:"symbol" validate:"required,max=16"`
	Lookback     int     `query:"lookback" json:"lookback" default:"90" validate:"gte=0,lte=3650"`
	Horizon      int     `query:"horizon" json:"horizon" default:"7" validate:"gte=1,lte=365"`
	Seed         string  `query:"seed" json:"seed" validate:"omitempty,numeric"`
	AsOf         string  `query:"as_of" json:"as_of" validate:"omitempty,datetime=2006-01-02"`
	RiskFreeRate float64 `query:"risk_free_rate" json:"risk_free_rate" default:"0.02" validate:"gte=0,lte=1"`
}

type RiskRequest struct {
	Volatility float64 `query:"volatility" json:"volatility" validate:"gte=0"`
	Price      float64 `query:"price" json:"price" default:"100" validate:"gt=0"`
}

type PerformanceRequest struct {
	Returns      []float64 `json:"returns" validate:"required_without=Prices"`
	Prices       []float64 `json:"prices" validate:"required_without=Returns,dive,gt=0"`
	RiskFreeRate float64   `json:"risk_free_rate" default:"0.02" validate:"gte=0,lte=1"`
}

// Responses.

type PricePointResponse struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
	Type   string  `json:"type"`
}

type ForecastPointResponse struct {
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Confidence    float64 `json:"confidence"`
	UpperBound    float64 `json:"upper_bound"`
	LowerBound    float64 `json:"lower_bound"`
	VolatilityPct float64 `json:"volatility"`
	Type          string  `json:"type"`
}

type RiskResponse struct {
	Volatility    float64 `json:"volatility"`
	Tier          string  `json:"tier"`
	ValueAtRisk95 float64 `json:"value_at_risk_95"`
	Score         int     `json:"score"`
	StopLoss      float64 `json:"stop_loss"`

	DownsideDeviation float64 `json:"downside_deviation"`
}

// PerformanceResponse renders a non-finite Sharpe ratio as null.
type PerformanceResponse struct {
	SharpeRatio   *float64 `json:"sharpe_ratio"`
	SharpeDefined bool     `json:"sharpe_defined"`
	MaxDrawdown   float64  `json:"max_drawdown"`
}

type ScenarioResponse struct {
	Investment     decimal.Decimal `json:"investment"`
	Shares         decimal.Decimal `json:"shares"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	PredictedValue decimal.Decimal `json:"predicted_value"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitPct      float64         `json:"profit_percent"`
}

type AllocationResponse struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

type InstrumentResponse struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
}

type HistoryResponse struct {
	Symbol string               `json:"symbol"`
	AsOf   string               `json:"as_of"`
	Seed   uint64               `json:"seed"`
	Points []PricePointResponse `json:"points"`
}

type ForecastResponse struct {
	Symbol     string                  `json:"symbol"`
	AsOf       string                  `json:"as_of"`
	Seed       uint64                  `json:"seed"`
	Volatility float64                 `json:"volatility"`
	Points     []ForecastPointResponse `json:"points"`

	ModelAccuracy float64 `json:"model_accuracy"`
}

type ReportResponse struct {
	ID                   string                  `json:"id"`
	Symbol               string                  `json:"symbol"`
	Name                 string                  `json:"name"`
	AsOf                 string                  `json:"as_of"`
	Seed                 uint64                  `json:"seed"`
	LookbackDays         int                     `json:"lookback_days"`
	HorizonDays          int                     `json:"horizon_days"`
	History              []PricePointResponse    `json:"history"`
	Forecast             []ForecastPointResponse `json:"forecast"`
	Volatility           float64                 `json:"volatility"`
	AnnualizedVolatility float64                 `json:"annualized_volatility"`
	Risk                 RiskResponse            `json:"risk"`
	Performance          PerformanceResponse     `json:"performance"`
	CurrentPrice         float64                 `json:"current_price"`
	PredictedPrice       float64                 `json:"predicted_price"`
	PriceChange          float64                 `json:"price_change"`
	PriceChangePct       float64                 `json:"price_change_percent"`
	BreakEvenPrice       float64                 `json:"break_even_price"`
	ExpectedAnnualReturn float64                 `json:"expected_annual_return_percent"`
	ModelAccuracy        float64                 `json:"model_accuracy"`
	Scenarios            []ScenarioResponse      `json:"scenarios"`
	Allocations          []AllocationResponse    `json:"allocations"`
	GeneratedAt          time.Time               `json:"generated_at"`
}

func NewHistoryResponse(s Series) []PricePointResponse {
	out := make([]PricePointResponse, 0, len(s))
	for _, p := range s {
		out = append(out, PricePointResponse{
			Date:   p.Date.Format(util.DateLayout),
			Close:  p.Close,
			Volume: p.Volume,
			Type:   string(p.Kind),
		})
	}
	return out
}

func NewForecastPointsResponse(points []ForecastPoint) []ForecastPointResponse {
	out := make([]ForecastPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, ForecastPointResponse{
			Date:          p.Date.Format(util.DateLayout),
			Price:         p.Price,
			Confidence:    p.Confidence,
			UpperBound:    p.UpperBound,
			LowerBound:    p.LowerBound,
			VolatilityPct: p.VolatilityPct,
			Type:          string(p.Kind),
		})
	}
	return out
}

func NewRiskResponse(p RiskProfile) RiskResponse {
	return RiskResponse{
		Volatility:    p.Volatility,
		Tier:          string(p.Tier),
		ValueAtRisk95: p.ValueAtRisk95,
		Score:         p.Score,
		StopLoss:      p.StopLoss,

		DownsideDeviation: p.DownsideDeviation,
	}
}

func NewPerformanceResponse(p PerformanceSummary) PerformanceResponse {
	res := PerformanceResponse{MaxDrawdown: p.MaxDrawdown}
	if !math.IsNaN(p.SharpeRatio) && !math.IsInf(p.SharpeRatio, 0) {
		v := p.SharpeRatio
		res.SharpeRatio = &v
		res.SharpeDefined = true
	}
	return res
}

func NewInstrumentsResponse(in []Instrument) []InstrumentResponse {
	out := make([]InstrumentResponse, 0, len(in))
	for _, i := range in {
		out = append(out, InstrumentResponse{Symbol: i.Symbol, Name: i.Name, BasePrice: i.BasePrice})
	}
	return out
}

// NewReportResponse maps a report to its wire form.
func NewReportResponse(r *Report) ReportResponse {
	scen := make([]ScenarioResponse, 0, len(r.Scenarios))
	for _, s := range r.Scenarios {
		scen = append(scen, ScenarioResponse{
			Investment:     s.Investment,
			Shares:         s.Shares,
			CurrentValue:   s.CurrentValue,
			PredictedValue: s.PredictedValue,
			Profit:         s.Profit,
			ProfitPct:      finiteOrZero(s.ProfitPct),
		})
	}
	alloc := make([]AllocationResponse, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		alloc = append(alloc, AllocationResponse{Name: a.Name, Percent: a.Percent})
	}
	return ReportResponse{
		ID:                   r.ID,
		Symbol:               r.Symbol,
		Name:                 r.Name,
		AsOf:                 r.AsOf.Format(util.DateLayout),
		Seed:                 r.Seed,
		LookbackDays:         r.LookbackDays,
		HorizonDays:          r.HorizonDays,
		History:              NewHistoryResponse(r.History),
		Forecast:             NewForecastPointsResponse(r.Forecast),
		Volatility:           r.Volatility,
		AnnualizedVolatility: r.AnnualizedVolatility,
		Risk:                 NewRiskResponse(r.Risk),
		Performance:          NewPerformanceResponse(r.Performance),
		CurrentPrice:         r.CurrentPrice,
		PredictedPrice:       r.PredictedPrice,
		PriceChange:          r.PriceChange,
		PriceChangePct:       finiteOrZero(r.PriceChangePct),
		BreakEvenPrice:       r.BreakEvenPrice,
		ExpectedAnnualReturn: finiteOrZero(r.ExpectedAnnualReturnPct),
		ModelAccuracy:        r.ModelAccuracy,
		Scenarios:            scen,
		Allocations:          alloc,
		GeneratedAt:          r.GeneratedAt,
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
