package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

func TestCompare(t *testing.T) {
	snap := &Snapshot{
		Rooms: testRooms(10),
		Bookings: []domain.Booking{
			// current window
			testBooking(date(2026, time.June, 10), date(2026, time.June, 13), 500),
			testBooking(date(2026, time.June, 20), date(2026, time.June, 22), 300),
			// previous window
			testBooking(date(2026, time.May, 10), date(2026, time.May, 15), 1000),
			// cancelled stays never count
			testBooking(date(2026, time.June, 5), date(2026, time.June, 8), 900,
				withStatus(domain.BookingStatusCancelled)),
		},
		Transactions: []domain.POSTransaction{
			testTransaction(date(2026, time.June, 12), 200, domain.POSStatusCompleted),
			testTransaction(date(2026, time.June, 14), 50, domain.POSStatusVoided),
		},
	}

	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}
	cmp := Compare(snap, period)

	assert.Equal(t, 800.0, cmp.Current.RoomRevenue)
	assert.Equal(t, 200.0, cmp.Current.POSRevenue)
	assert.Equal(t, 1000.0, cmp.Current.Revenue)
	assert.Equal(t, 2, cmp.Current.Bookings)
	assert.Equal(t, 400.0, cmp.Current.ADR)

	assert.Equal(t, 1000.0, cmp.Previous.RoomRevenue)
	assert.Equal(t, 1, cmp.Previous.Bookings)

	assert.Equal(t, 0.0, cmp.Changes.Revenue)
	assert.Equal(t, -20.0, cmp.Changes.RoomRevenue)
	assert.Equal(t, 100.0, cmp.Changes.Bookings)
}

func TestCompareEmptySnapshot(t *testing.T) {
	snap := &Snapshot{}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	cmp := Compare(snap, period)

	assert.Zero(t, cmp.Current.Revenue)
	assert.Zero(t, cmp.Current.OccupancyRate)
	assert.Zero(t, cmp.Current.ADR)
	assert.Zero(t, cmp.Changes.Revenue)
}

func TestCompareDeterministic(t *testing.T) {
	snap := &Snapshot{
		Rooms: testRooms(5),
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 3), date(2026, time.June, 6), 450),
		},
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	first := Compare(snap, period)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compare(snap, period))
	}
}
