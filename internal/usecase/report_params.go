package usecase

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"PriceCast/pkg/util"
)

// ReportParams identifies one pipeline run. With Seeded set and AsOf non-zero
// the run is fully reproducible.
type ReportParams struct {
	Symbol       string
	LookbackDays int
	HorizonDays  int
	RiskFreeRate float64
	AsOf         time.Time
	Seed         uint64
	Seeded       bool

	// Replayable marks a seed a later identical request would resolve to again,
	// making the result safe to cache.
	Replayable bool
}

// WithSeed pins an explicit seed. Explicit seeds always replay.
func (p ReportParams) WithSeed(seed uint64) ReportParams {
	p.Seed, p.Seeded, p.Replayable = seed, true, true
	return p
}

// CacheKey is report:{symbol}:{lookback}:{horizon}:{seed}:{asOf}:{rf}.
func (p ReportParams) CacheKey() string {
	var b strings.Builder
	b.WriteString("report:")
	b.WriteString(p.Symbol)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(p.LookbackDays))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(p.HorizonDays))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(p.Seed, 10))
	b.WriteByte(':')
	b.WriteString(p.AsOf.Format(util.DateLayout))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(p.RiskFreeRate, 'g', -1, 64))
	return b.String()
}

// SeedFunc picks a seed for a request that did not carry one.
type SeedFunc func(symbol string, asOf time.Time) (seed uint64, replayable bool)

// ClockSeeds draws a fresh seed from clock on every call.
func ClockSeeds(clock func() time.Time) SeedFunc {
	return func(string, time.Time) (uint64, bool) {
		return uint64(clock().UnixNano()), false
	}
}

// DailySeeds derives the seed from symbol and calendar day, so one symbol
// yields one report per day.
func DailySeeds() SeedFunc {
	return func(symbol string, asOf time.Time) (uint64, bool) {
		return DailySeed(symbol, asOf), true
	}
}

// DailySeed is FNV-64a of "SYMBOL|YYYY-MM-DD".
func DailySeed(symbol string, day time.Time) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol + "|" + util.Day(day).Format(util.DateLayout)))
	return h.Sum64()
}
