package pricing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"three full days", date(2025, 6, 1), date(2025, 6, 4), 3},
		{"single day", date(2025, 6, 1), date(2025, 6, 2), 1},
		{"partial day rounds up", date(2025, 6, 1), date(2025, 6, 2).Add(6 * time.Hour), 2},
		{"equal instants", date(2025, 6, 1), date(2025, 6, 1), 0},
		{"across month boundary", date(2025, 6, 28), date(2025, 7, 3), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeDays(tc.start, tc.end); got != tc.want {
				t.Fatalf("ComputeDays(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

// The calculator works on the magnitude of the interval, so swapping the
// arguments must not change the result.  Ordering validation is the
// caller's responsibility.
func TestComputeDaysOrderAgnostic(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 9)
	if ComputeDays(start, end) != ComputeDays(end, start) {
		t.Fatalf("ComputeDays is not symmetric under argument swap")
	}
}

func TestComputeTotal(t *testing.T) {
	cases := []struct {
		days int
		rate float64
		want float64
	}{
		{3, 100, 300},
		{1, 0, 0},
		{2, 49.5, 99},
		{7, 120.25, 841.75},
	}
	for _, tc := range cases {
		if got := ComputeTotal(tc.days, tc.rate); got != tc.want {
			t.Fatalf("ComputeTotal(%d, %v) = %v, want %v", tc.days, tc.rate, got, tc.want)
		}
	}
}
