package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// RoomPerformanceFor ranks every room by revenue over the window. Rooms with
// no bookings still appear with zero figures so underperformers are visible.
func RoomPerformanceFor(snap *Snapshot, period Period) domain.RoomPerformanceReport {
	daysInPeriod := daysCeil(period.Start, period.End)
	if daysInPeriod == 0 {
		daysInPeriod = 30
	}

	performance := make(map[uuid.UUID]*domain.RoomPerformance)
	var order []uuid.UUID
	for i := range snap.Rooms {
		room := &snap.Rooms[i]
		performance[room.ID] = &domain.RoomPerformance{
			RoomID:   room.ID.String(),
			RoomType: room.Type,
		}
		order = append(order, room.ID)
	}

	stays := make(map[uuid.UUID][]int)
	occupiedNights := make(map[uuid.UUID]int)

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		p := period
		if !inGuestScope(b, &p) {
			continue
		}
		perf, ok := performance[b.RoomID]
		if !ok {
			roomType := b.RoomType
			if roomType == "" {
				roomType = "Unknown"
			}
			perf = &domain.RoomPerformance{RoomID: b.RoomID.String(), RoomType: roomType}
			performance[b.RoomID] = perf
			order = append(order, b.RoomID)
		}
		perf.TotalBookings++
		perf.TotalRevenue += b.TotalPrice

		stays[b.RoomID] = append(stays[b.RoomID], StayNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut)))
		occupiedNights[b.RoomID] += OverlapNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut), dateOnly(period.Start), dateOnly(period.End))
	}

	rooms := make([]domain.RoomPerformance, 0, len(order))
	for _, id := range order {
		perf := performance[id]
		if perf.TotalBookings > 0 {
			perf.AverageRevenue = math.Round(perf.TotalRevenue / float64(perf.TotalBookings))
		}
		if nights := stays[id]; len(nights) > 0 {
			sum := 0
			for _, n := range nights {
				sum += n
			}
			perf.AverageStay = round1(float64(sum) / float64(len(nights)))
		}
		perf.OccupancyRate = math.Round(float64(occupiedNights[id]) / float64(daysInPeriod) * 100)
		rooms = append(rooms, *perf)
	}

	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].TotalRevenue > rooms[j].TotalRevenue })
	totalRevenue := 0.0
	occupancySum := 0.0
	for i := range rooms {
		rooms[i].Rank = i + 1
		totalRevenue += rooms[i].TotalRevenue
		occupancySum += rooms[i].OccupancyRate
	}

	report := domain.RoomPerformanceReport{
		Rooms:            rooms,
		TotalRoomRevenue: totalRevenue,
	}
	if len(rooms) > 0 {
		report.TopPerformer = &rooms[0]
		last := rooms[len(rooms)-1]
		report.LowestPerformer = &last
		report.AverageOccupancy = math.Round(occupancySum / float64(len(rooms)))
	}
	return report
}
