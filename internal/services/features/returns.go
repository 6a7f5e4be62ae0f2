package features

import (
	"math"

	"PriceCast/internal/domain/models"
)

// DefaultVolatility is returned when a series is too short to estimate dispersion.
const DefaultVolatility = 0.02

// TradingDaysPerYear is the annualization factor for daily bars.
const TradingDaysPerYear = 252

// ComputeLogReturns computes log returns r_t = ln(C_t / C_{t-1}).
// It returns a slice of length len(closes)-1, or nil if insufficient data.
func ComputeLogReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		cur := closes[i]
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// ComputeSimpleReturns computes (C_t - C_{t-1}) / C_{t-1}.
func ComputeSimpleReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (closes[i]-prev)/prev)
	}
	return out
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
// A constant input yields exactly zero deviation.
func MeanStdDev(xs []float64) (mean, std float64) {
	n := float64(len(xs))
	if n == 0 {
		return math.NaN(), math.NaN()
	}
	sum := 0.0
	constant := true
	for _, x := range xs {
		sum += x
		if x != xs[0] {
			constant = false
		}
	}
	mean = sum / n
	if constant {
		return xs[0], 0
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / n)
}

// EstimateVolatility is the population standard deviation of daily log returns.
// Fewer than two points yields DefaultVolatility.
func EstimateVolatility(series models.Series) float64 {
	if series.Len() < 2 {
		return DefaultVolatility
	}
	_, std := MeanStdDev(ComputeLogReturns(series.Closes()))
	return std
}

// Annualize scales a per-bar volatility by sqrt(barsPerYear).
func Annualize(vol float64, barsPerYear float64) float64 {
	if barsPerYear <= 0 {
		return 0
	}
	return vol * math.Sqrt(barsPerYear)
}
