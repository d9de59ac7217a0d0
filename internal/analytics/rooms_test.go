package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

func TestRoomPerformanceFor(t *testing.T) {
	rooms := testRooms(3)
	deluxe := rooms[0]
	deluxe.Type = "Deluxe"
	rooms[0] = deluxe

	snap := &Snapshot{
		Rooms: rooms,
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 1), date(2026, time.June, 5), 800,
				withRoom(deluxe.ID, "Deluxe")),
			testBooking(date(2026, time.June, 10), date(2026, time.June, 12), 400,
				withRoom(deluxe.ID, "Deluxe")),
			testBooking(date(2026, time.June, 3), date(2026, time.June, 4), 100,
				withRoom(rooms[1].ID, "Standard")),
		},
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := RoomPerformanceFor(snap, period)

	require.Len(t, got.Rooms, 3)
	require.NotNil(t, got.TopPerformer)
	assert.Equal(t, deluxe.ID.String(), got.TopPerformer.RoomID)
	assert.Equal(t, 1200.0, got.TopPerformer.TotalRevenue)
	assert.Equal(t, 2, got.TopPerformer.TotalBookings)
	assert.Equal(t, 600.0, got.TopPerformer.AverageRevenue)
	assert.Equal(t, 3.0, got.TopPerformer.AverageStay)
	assert.Equal(t, 1, got.TopPerformer.Rank)

	// the idle room ranks last with zero figures
	require.NotNil(t, got.LowestPerformer)
	assert.Zero(t, got.LowestPerformer.TotalBookings)
	assert.Equal(t, 3, got.LowestPerformer.Rank)

	assert.Equal(t, 1300.0, got.TotalRoomRevenue)
}

func TestRoomPerformanceUnknownRoom(t *testing.T) {
	// bookings referencing rooms missing from the snapshot still rank
	roomID := uuid.New()
	snap := &Snapshot{
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 1), date(2026, time.June, 3), 250,
				withRoom(roomID, "")),
		},
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := RoomPerformanceFor(snap, period)

	require.Len(t, got.Rooms, 1)
	assert.Equal(t, "Unknown", got.Rooms[0].RoomType)
	assert.Equal(t, 250.0, got.Rooms[0].TotalRevenue)
}
