package pricing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDays(t *testing.T) {
	cases := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int64
	}{
		{"three full days", date(2026, 3, 10), date(2026, 3, 13), 3},
		{"single day", date(2026, 3, 10), date(2026, 3, 11), 1},
		{"partial day rounds up", date(2026, 3, 10), date(2026, 3, 11).Add(6 * time.Hour), 2},
		{"same instant bills one day", date(2026, 3, 10), date(2026, 3, 10), 1},
		{"across dst style offsets", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Days(tc.pickup, tc.ret); got != tc.want {
				t.Errorf("Days(%v, %v) = %d, want %d", tc.pickup, tc.ret, got, tc.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	// $50.00/day for 3 days is $150.00.
	got := Total(5000, date(2026, 3, 10), date(2026, 3, 13))
	if got != 15000 {
		t.Errorf("Total = %d, want 15000", got)
	}
}

func TestTotal_MinimumOneDay(t *testing.T) {
	got := Total(5000, date(2026, 3, 10), date(2026, 3, 10))
	if got != 5000 {
		t.Errorf("Total = %d, want 5000", got)
	}
}
