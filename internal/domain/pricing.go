package domain

import (
	"math"
	"time"
)

// Round2 rounds a price to two decimal places (currency minor units)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OccupationRate computes the share of non-available slots in a lot
// from a live snapshot of slot counts
func OccupationRate(availableSlots, totalSlots int) float64 {
	if totalSlots == 0 {
		return 0
	}
	return float64(totalSlots-availableSlots) / float64(totalSlots)
}

// CurrentRate computes the effective hourly rate of a lot.
// The surge multiplier kicks in when occupancy strictly exceeds
// SurgeThreshold. Pure function over a snapshot, nothing is cached.
func CurrentRate(basePrice float64, occupationRate float64) (rate float64, isSurge bool) {
	if occupationRate > SurgeThreshold {
		return Round2(basePrice * SurgeMultiplier), true
	}
	return Round2(basePrice), false
}

// BookingPrice computes the total price of a booking as duration in hours
// (fractional hours allowed) times the hourly rate, rounded to 2 decimals
func BookingPrice(start, end time.Time, hourlyRate float64) float64 {
	hours := end.Sub(start).Hours()
	return Round2(hours * hourlyRate)
}
