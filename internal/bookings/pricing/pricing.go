// Package pricing computes rental charges. All amounts are in currency
// minor units (cents) so arithmetic stays exact.
package pricing

import "time"

const day = 24 * time.Hour

// Days returns the number of billable days for the half-open range
// [pickup, return). Partial days round up and every booking is billed at
// least one day.
func Days(pickup, ret time.Time) int64 {
	span := ret.Sub(pickup)
	if span <= 0 {
		return 1
	}

	days := int64(span / day)
	if span%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// Total is the frozen price of a booking: billable days times the car's
// daily rate at creation time.
func Total(pricePerDay int64, pickup, ret time.Time) int64 {
	return pricePerDay * Days(pickup, ret)
}
