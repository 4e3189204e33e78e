package app

import (
	"math"
	"time"
)

const nightMillis = 1000 * 60 * 60 * 24

// Nights counts billable nights between check-in and check-out. The ceiling
// is deliberate: any partial-day difference bills as a full night. Kept
// bit-for-bit compatible with the pricing the rest of the business runs on.
func Nights(checkIn, checkOut time.Time) int {
	ms := checkOut.Sub(checkIn).Milliseconds()
	return int(math.Ceil(float64(ms) / float64(nightMillis)))
}

// TotalPrice derives a booking's price from its date range and the room's
// nightly rate at the time of the call.
func TotalPrice(checkIn, checkOut time.Time, nightlyRate float64) float64 {
	return float64(Nights(checkIn, checkOut)) * nightlyRate
}
