package domain

import "time"

// Refund tiers by whole days until check-in:
//
//	>= 7 days  100%
//	3-6 days    75%
//	1-2 days    50%
//	< 1 day      0%
func RefundAmount(totalCost float64, daysUntilCheckIn int) float64 {
	switch {
	case daysUntilCheckIn >= 7:
		return totalCost
	case daysUntilCheckIn >= 3:
		return totalCost * 0.75
	case daysUntilCheckIn >= 1:
		return totalCost * 0.5
	default:
		return 0
	}
}

// DaysUntilCheckIn counts whole calendar days from today to the check-in
// date, negative when check-in has already passed. Only the dates matter,
// not the time of day.
func DaysUntilCheckIn(today, checkIn time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	c := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	return int(c.Sub(t).Hours() / 24)
}
