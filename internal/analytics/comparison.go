package analytics

import (
	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// periodMetrics computes one side of a comparison. Occupancy comes from a
// per-day scan of rooms held, averaged over the window; this intentionally
// differs from the overlap-night method used by the monthly series.
func periodMetrics(snap *Snapshot, period Period) domain.PeriodMetrics {
	totalRooms := snap.TotalRooms()

	roomRevenue := 0.0
	bookingCount := 0
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !b.Status.CountsForRevenue() || !period.Contains(b.EffectiveDate()) {
			continue
		}
		roomRevenue += b.TotalPrice
		bookingCount++
	}

	posRevenue := 0.0
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Status != domain.POSStatusCompleted || !period.Contains(t.CreatedAt) {
			continue
		}
		posRevenue += t.Total
	}

	occupiedDays, totalDays := 0, 0
	for d := dateOnly(period.Start); !d.After(dateOnly(period.End)); d = d.AddDate(0, 0, 1) {
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForOccupancy() {
				continue
			}
			if !dateOnly(b.CheckIn).After(d) && !dateOnly(b.CheckOut).Before(d) {
				occupiedDays++
			}
		}
		totalDays += totalRooms
	}
	occupancyRate := 0.0
	if totalDays > 0 {
		occupancyRate = float64(occupiedDays) / float64(totalDays) * 100
	}

	return domain.PeriodMetrics{
		Revenue:       roomRevenue + posRevenue,
		RoomRevenue:   roomRevenue,
		POSRevenue:    posRevenue,
		Bookings:      bookingCount,
		OccupancyRate: round1(occupancyRate),
		ADR:           ADR(roomRevenue, bookingCount),
		RevPAR:        RevPAR(roomRevenue, totalRooms, period.Days()),
	}
}

// Compare computes metrics for the window and the equal-length window before
// it, plus the percent change of each metric.
func Compare(snap *Snapshot, period Period) domain.PeriodComparison {
	current := periodMetrics(snap, period)
	previous := periodMetrics(snap, period.Previous())

	return domain.PeriodComparison{
		Current:  current,
		Previous: previous,
		Changes: domain.PeriodChanges{
			Revenue:       PercentChange(current.Revenue, previous.Revenue),
			RoomRevenue:   PercentChange(current.RoomRevenue, previous.RoomRevenue),
			POSRevenue:    PercentChange(current.POSRevenue, previous.POSRevenue),
			Bookings:      PercentChange(float64(current.Bookings), float64(previous.Bookings)),
			OccupancyRate: PercentChange(current.OccupancyRate, previous.OccupancyRate),
			ADR:           PercentChange(current.ADR, previous.ADR),
			RevPAR:        PercentChange(current.RevPAR, previous.RevPAR),
		},
	}
}
