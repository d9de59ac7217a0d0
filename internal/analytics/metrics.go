package analytics

import "math"

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentChange compares a current value against a previous one. A flat zero
// baseline reads as no change; growth from zero reads as a full 100%.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round1((current - previous) / previous * 100)
}

// OccupancyRate is occupied nights over available nights as a percentage,
// one decimal, clamped to [0, 100]. Zero capacity yields zero.
func OccupancyRate(occupiedNights, totalRooms, days int) float64 {
	totalNights := totalRooms * days
	if totalNights <= 0 {
		return 0
	}
	rate := float64(occupiedNights) / float64(totalNights) * 100
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	return round1(rate)
}

// ADR is room revenue per booking, two decimals. The denominator is the
// booking count rather than occupied nights, matching how the dashboard has
// always reported it.
func ADR(roomRevenue float64, bookingCount int) float64 {
	if bookingCount <= 0 {
		return 0
	}
	return round2(roomRevenue / float64(bookingCount))
}

// RevPAR is room revenue per available room-night, two decimals
func RevPAR(roomRevenue float64, totalRooms, days int) float64 {
	if totalRooms <= 0 || days <= 0 {
		return 0
	}
	return round2(roomRevenue / float64(totalRooms*days))
}
