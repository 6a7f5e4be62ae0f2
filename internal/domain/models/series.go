package models

import "time"

// PointKind tags a point as observed history or model output.
type PointKind string

const (
	KindHistorical PointKind = "historical"
	KindPredicted  PointKind = "predicted"
)

// PricePoint is one daily observation of an instrument.
type PricePoint struct {
	Date   time.Time // calendar day, UTC midnight
	Close  float64
	Volume int64
	Kind   PointKind
}

// ForecastPoint is one projected day with its confidence band.
type ForecastPoint struct {
	Date          time.Time
	Price         float64
	Confidence    float64 // 0.6 .. 0.95
	UpperBound    float64
	LowerBound    float64
	VolatilityPct float64 // volatility * 100
	Kind          PointKind
}

// Series is an ascending, gap-free run of daily price points.
type Series []PricePoint

// Len returns the number of points.
func (s Series) Len() int { return len(s) }

// Last returns the newest point and false when the series is empty.
func (s Series) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Closes extracts closing prices in series order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}
