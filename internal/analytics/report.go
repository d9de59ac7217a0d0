package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// ReportPeriod resolves the window an emailed report covers: the trailing
// day, week or month ending now.
func ReportPeriod(frequency domain.ReportFrequency, now time.Time) Period {
	switch frequency {
	case domain.ReportFrequencyDaily:
		return Period{Start: now.AddDate(0, 0, -1), End: now}
	case domain.ReportFrequencyWeekly:
		return Period{Start: now.AddDate(0, 0, -7), End: now}
	default:
		return Period{Start: now.AddDate(0, -1, 0), End: now}
	}
}

// BuildReport computes the combined block an emailed report renders.
// Occupancy is reported as a whole percentage here; the alert lines are the
// short plain-text form, not the dashboard alert objects.
func BuildReport(snap *Snapshot, period Period) domain.ReportBundle {
	totalRooms := snap.TotalRooms()
	if totalRooms == 0 {
		totalRooms = 1
	}

	var paid []*domain.Booking
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !b.Status.CountsForRevenue() || !period.Contains(b.EffectiveDate()) {
			continue
		}
		paid = append(paid, b)
	}

	roomRevenue := 0.0
	online, walkIn := 0, 0
	for _, b := range paid {
		roomRevenue += b.TotalPrice
		if b.IsWalkIn {
			walkIn++
		} else {
			online++
		}
	}

	posRevenue := 0.0
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Status != domain.POSStatusCompleted || !period.Contains(t.CreatedAt) {
			continue
		}
		posRevenue += t.Total
	}

	daysInPeriod := daysCeil(period.Start, period.End)
	if daysInPeriod == 0 {
		daysInPeriod = 1
	}
	occupiedNights := 0
	for _, b := range paid {
		occupiedNights += OverlapNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut), dateOnly(period.Start), dateOnly(period.End))
	}
	totalNights := totalRooms * daysInPeriod
	occupancyRate := 0.0
	if totalNights > 0 {
		occupancyRate = float64(occupiedNights) / float64(totalNights) * 100
	}
	occupancyRate = math.Round(occupancyRate)

	avgStay := 0.0
	if len(paid) > 0 {
		sum := 0
		for _, b := range paid {
			sum += StayNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut))
		}
		avgStay = round1(float64(sum) / float64(len(paid)))
	}

	type roomAgg struct {
		roomType string
		revenue  float64
	}
	byRoom := make(map[uuid.UUID]*roomAgg)
	for _, b := range paid {
		a, ok := byRoom[b.RoomID]
		if !ok {
			a = &roomAgg{roomType: b.RoomType}
			byRoom[b.RoomID] = a
		}
		a.revenue += b.TotalPrice
	}
	var roomAggs []*roomAgg
	for _, a := range byRoom {
		roomAggs = append(roomAggs, a)
	}
	sort.SliceStable(roomAggs, func(i, j int) bool { return roomAggs[i].revenue > roomAggs[j].revenue })
	topRoom := ""
	if len(roomAggs) > 0 {
		topRoom = roomAggs[0].roomType
	}

	alerts := []string{}
	if occupancyRate < 50 {
		alerts = append(alerts, fmt.Sprintf("Low occupancy rate: %v%%", occupancyRate))
	}
	if len(paid) == 0 {
		alerts = append(alerts, "No bookings in this period")
	}
	if roomRevenue+posRevenue == 0 {
		alerts = append(alerts, "No revenue generated")
	}

	return domain.ReportBundle{
		TotalRevenue:        roomRevenue + posRevenue,
		RoomRevenue:         roomRevenue,
		POSRevenue:          posRevenue,
		OccupancyRate:       occupancyRate,
		TotalBookings:       len(paid),
		OnlineBookings:      online,
		WalkInBookings:      walkIn,
		AverageStayDuration: avgStay,
		TopRoom:             topRoom,
		Alerts:              alerts,
	}
}
