package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRooms(n int) []domain.Room {
	rooms := make([]domain.Room, n)
	for i := range rooms {
		rooms[i] = domain.Room{
			BaseModel:     domain.BaseModel{ID: uuid.New()},
			Number:        string(rune('A' + i)),
			Type:          "Standard",
			PricePerNight: 100,
			Capacity:      2,
		}
	}
	return rooms
}

type bookingOpt func(*domain.Booking)

func walkIn() bookingOpt {
	return func(b *domain.Booking) { b.IsWalkIn = true }
}

func withStatus(s domain.BookingStatus) bookingOpt {
	return func(b *domain.Booking) { b.Status = s }
}

func withGuest(name, email string) bookingOpt {
	return func(b *domain.Booking) {
		b.GuestName = name
		b.GuestEmail = email
	}
}

func withGuestID(id uuid.UUID) bookingOpt {
	return func(b *domain.Booking) { b.GuestID = &id }
}

func withBookedAt(t time.Time) bookingOpt {
	return func(b *domain.Booking) { b.BookedAt = &t }
}

func withRoom(id uuid.UUID, roomType string) bookingOpt {
	return func(b *domain.Booking) {
		b.RoomID = id
		b.RoomType = roomType
	}
}

func testBooking(checkIn, checkOut time.Time, price float64, opts ...bookingOpt) domain.Booking {
	b := domain.Booking{
		BaseModel:  domain.BaseModel{ID: uuid.New(), CreatedAt: checkIn},
		RoomID:     uuid.New(),
		RoomType:   "Standard",
		GuestName:  "Guest",
		GuestEmail: "guest@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     domain.BookingStatusPaid,
		TotalPrice: price,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func testTransaction(createdAt time.Time, total float64, status domain.POSTransactionStatus) domain.POSTransaction {
	return domain.POSTransaction{
		BaseModel:     domain.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		Status:        status,
		PaymentMethod: "cash",
		Subtotal:      total,
		Total:         total,
	}
}
