// Package pricing computes rental durations and totals.  Both functions
// are pure: identical inputs always produce identical outputs and no
// clock or store is consulted.
package pricing

import (
	"math"
	"time"
)

const dayMillis = 86_400_000

// ComputeDays returns the number of billable rental days between start
// and end, rounding any partial day up.  The magnitude of the interval
// is used, so the result is the same regardless of argument order; the
// caller must validate start < end before treating the result as a
// forward duration.
func ComputeDays(start, end time.Time) int {
	diff := end.Sub(start).Milliseconds()
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(dayMillis)))
}

// ComputeTotal returns days * dailyRate with no rounding applied.
// Decimal daily rates are preserved exactly as billed per day; VAT and
// currency rounding belong to invoicing, which is outside this service.
func ComputeTotal(days int, dailyRate float64) float64 {
	return float64(days) * dailyRate
}
