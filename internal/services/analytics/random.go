package analytics

import (
	"math/rand/v2"

	domsvc "PriceCast/internal/domain/service"
)

// NewRand returns a deterministic source for seed. Two sources built from the
// same seed yield identical draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform draws from [lo, hi).
func uniform(r domsvc.RandomSource, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

var _ domsvc.RandomSource = (*rand.Rand)(nil)
