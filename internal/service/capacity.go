package service

import (
	"math"

	"smartstock/internal/model"
)

// Utilization tiers shown by the warehouse pages. Fixed breakpoints — part of
// the presentation contract, not configuration.
const (
	TierOptimal  = "optimal"
	TierLow      = "low"
	TierCritical = "critical"
)

// UtilizationPercent returns round(100 * utilized / capacity), 0 for zones
// with zero capacity.
func UtilizationPercent(z *model.Zone) int {
	if z.Capacity == 0 {
		return 0
	}
	return int(math.Round(100 * float64(z.Utilized) / float64(z.Capacity)))
}

// Tier classifies a utilization percentage: <50 optimal, 50–84 low (watch),
// >=85 critical.
func Tier(percent int) string {
	switch {
	case percent >= 85:
		return TierCritical
	case percent >= 50:
		return TierLow
	default:
		return TierOptimal
	}
}

// CanAccommodate reports whether utilized+delta stays within [0, capacity].
// The stock engine consults this before committing any in/out.
func CanAccommodate(z *model.Zone, delta int) bool {
	next := z.Utilized + delta
	return next >= 0 && next <= z.Capacity
}
