package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

func posFixture() *Snapshot {
	foods := domain.POSCategory{ID: "foods", Name: "Food & Beverage"}
	services := domain.POSCategory{ID: "services", Name: "Services"}

	burger := domain.POSProduct{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Burger", CategoryID: "foods", Price: 12}
	massage := domain.POSProduct{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Massage", CategoryID: "services", Price: 60}

	completed := testTransaction(date(2026, time.June, 10), 84, domain.POSStatusCompleted)
	voided := testTransaction(date(2026, time.June, 11), 500, domain.POSStatusVoided)

	items := []domain.POSTransactionItem{
		{BaseModel: domain.BaseModel{ID: uuid.New()}, TransactionID: completed.ID, ProductID: burger.ID, Quantity: 2, TotalPrice: 24},
		{BaseModel: domain.BaseModel{ID: uuid.New()}, TransactionID: completed.ID, ProductID: massage.ID, Quantity: 1, TotalPrice: 60},
		{BaseModel: domain.BaseModel{ID: uuid.New()}, TransactionID: voided.ID, ProductID: burger.ID, Quantity: 10, TotalPrice: 120},
	}

	return &Snapshot{
		Rooms:        testRooms(4),
		Transactions: []domain.POSTransaction{completed, voided},
		Items:        items,
		Products:     []domain.POSProduct{burger, massage},
		Categories:   []domain.POSCategory{foods, services},
	}
}

func TestRoomTypes(t *testing.T) {
	rooms := testRooms(3)
	rooms[2].Type = "Suite"
	rooms[2].PricePerNight = 300
	rooms[2].Capacity = 4

	snap := &Snapshot{
		Rooms: rooms,
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 1), date(2026, time.June, 5), 400,
				withRoom(rooms[0].ID, "Standard")),
			// completed stays no longer hold the room on a given day
			testBooking(date(2026, time.June, 1), date(2026, time.June, 5), 400,
				withRoom(rooms[1].ID, "Standard"), withStatus(domain.BookingStatusCompleted)),
		},
	}

	got := RoomTypes(snap, date(2026, time.June, 3))

	require.Len(t, got, 2)
	byType := map[string]domain.RoomTypeSummary{}
	for _, rt := range got {
		byType[rt.Type] = rt
	}
	assert.Equal(t, 2, byType["Standard"].Total)
	assert.Equal(t, 1, byType["Standard"].Occupied)
	assert.Equal(t, 1, byType["Suite"].Total)
	assert.Equal(t, 0, byType["Suite"].Occupied)
	assert.Equal(t, 4, byType["Suite"].Capacity)
}

func TestBookingStats(t *testing.T) {
	snap := &Snapshot{
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 2), date(2026, time.June, 4), 200),
			testBooking(date(2026, time.June, 3), date(2026, time.June, 5), 300, walkIn()),
			testBooking(date(2026, time.June, 6), date(2026, time.June, 7), 100,
				withStatus(domain.BookingStatusPending)),
		},
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := BookingStats(snap, period)

	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.WalkIn)
	assert.Equal(t, 1, got.Online)
	assert.Equal(t, 500.0, got.TotalRevenue)
}

func TestDailyOccupancy(t *testing.T) {
	snap := &Snapshot{
		Rooms: testRooms(4),
		Bookings: []domain.Booking{
			testBooking(date(2026, time.June, 1), date(2026, time.June, 3), 200),
		},
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 4)}

	got := DailyOccupancy(snap, period)

	require.Len(t, got, 4)
	assert.Equal(t, "Jun 1", got[0].Date)
	assert.Equal(t, 1, got[0].Occupied)
	assert.Equal(t, 3, got[0].Available)
	assert.Equal(t, 25.0, got[0].Rate)
	// check-out day still counts as held, the day after does not
	assert.Equal(t, 1, got[2].Occupied)
	assert.Equal(t, 0, got[3].Occupied)
}

func TestMonthlyRevenueBuckets(t *testing.T) {
	snap := posFixture()
	snap.Bookings = []domain.Booking{
		testBooking(date(2026, time.June, 5), date(2026, time.June, 8), 900),
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := MonthlyRevenue(snap, period)

	require.Len(t, got, 1)
	assert.Equal(t, "Jun", got[0].Month)
	assert.Equal(t, 900.0, got[0].Rooms)
	assert.Equal(t, 24.0, got[0].Restaurant)
	assert.Equal(t, 60.0, got[0].Spa)
}

func TestMonthlyRevenueItemlessTransaction(t *testing.T) {
	bare := testTransaction(date(2026, time.June, 20), 40, domain.POSStatusCompleted)
	bare.Subtotal = 35
	snap := &Snapshot{Transactions: []domain.POSTransaction{bare}}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := MonthlyRevenue(snap, period)

	require.Len(t, got, 1)
	assert.Equal(t, 35.0, got[0].Spa)
}

func TestCategoryRevenue(t *testing.T) {
	got := CategoryRevenue(posFixture())

	require.Len(t, got, 2)
	byID := map[string]domain.POSCategoryRevenue{}
	for _, c := range got {
		byID[c.Category] = c
	}
	assert.Equal(t, 24.0, byID["foods"].Revenue)
	assert.Equal(t, "Food & Beverage", byID["foods"].CategoryName)
	assert.Equal(t, 1, byID["foods"].TransactionCount)
	assert.Equal(t, 60.0, byID["services"].Revenue)
}

func TestPaymentMethods(t *testing.T) {
	card := testTransaction(date(2026, time.June, 2), 100, domain.POSStatusCompleted)
	card.PaymentMethod = "card"
	cash := testTransaction(date(2026, time.June, 3), 300, domain.POSStatusCompleted)

	got := PaymentMethods(&Snapshot{Transactions: []domain.POSTransaction{card, cash}})

	require.Len(t, got, 2)
	byMethod := map[string]domain.PaymentMethodBreakdown{}
	for _, m := range got {
		byMethod[m.Method] = m
	}
	assert.Equal(t, 100.0, byMethod["Card"].Amount)
	assert.Equal(t, 25.0, byMethod["Card"].Percentage)
	assert.Equal(t, 75.0, byMethod["Cash"].Percentage)
}

func TestTopProducts(t *testing.T) {
	got := TopProducts(posFixture(), 10)

	require.Len(t, got, 2)
	assert.Equal(t, "Massage", got[0].Name)
	assert.Equal(t, 60.0, got[0].Revenue)
	assert.Equal(t, "Burger", got[1].Name)
	assert.Equal(t, 2, got[1].QuantitySold)
	assert.Equal(t, "Food & Beverage", got[1].Category)

	limited := TopProducts(posFixture(), 1)
	assert.Len(t, limited, 1)
}

func TestRevenueSummaryFor(t *testing.T) {
	snap := posFixture()
	snap.Transactions[0].Tax = 9
	snap.Bookings = []domain.Booking{
		testBooking(date(2026, time.June, 5), date(2026, time.June, 8), 900),
	}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := RevenueSummaryFor(snap, period)

	assert.Equal(t, 900.0, got.TotalRoomRevenue)
	assert.Equal(t, 84.0, got.TotalPOSRevenue)
	assert.Equal(t, 984.0, got.TotalRevenue)
	assert.Equal(t, 1, got.TotalTransactions)
	assert.Equal(t, 84.0, got.AvgTransactionValue)
	assert.Equal(t, 9.0, got.TaxCollected)
}

func TestKPIs(t *testing.T) {
	roomTypes := []domain.RoomTypeSummary{
		{Type: "Standard", Occupied: 3, Total: 6, Rate: 100, Capacity: 2},
		{Type: "Suite", Occupied: 1, Total: 4, Rate: 300, Capacity: 4},
	}
	monthly := []domain.MonthlyRevenue{
		{Month: "May", Rooms: 4000, Restaurant: 500, Spa: 250},
		{Month: "Jun", Rooms: 5000, Restaurant: 750, Spa: 500},
	}

	got := KPIs(roomTypes, monthly)

	assert.Equal(t, 40.0, got.OccupancyRate)
	assert.Equal(t, 150.0, got.ADR)
	assert.Equal(t, 60.0, got.RevPAR)
	assert.Equal(t, 11000.0, got.TotalRevenue)
	assert.Equal(t, 28, got.TotalCapacity)
}

func TestRecentBookingsSortAndLimit(t *testing.T) {
	var bookings []domain.Booking
	for i := 0; i < 12; i++ {
		bookings = append(bookings, testBooking(
			date(2026, time.June, 1+i), date(2026, time.June, 2+i), 100))
	}
	snap := &Snapshot{Bookings: bookings}
	period := Period{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}

	got := RecentBookings(snap, period)

	require.Len(t, got, 10)
	assert.Equal(t, "2026-06-12", got[0].CheckIn)
	assert.Len(t, got[0].ID, 6)
}
