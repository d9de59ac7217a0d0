package service

import (
	"context"
	"fmt"

	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// snapshotLoader is what the computing services need from SnapshotService.
type snapshotLoader interface {
	Load(ctx context.Context) (*analytics.Snapshot, error)
}

// SnapshotService assembles the full analytics working set from the
// operational tables. Every analytics operation runs against one snapshot so
// all figures in a response agree with each other.
type SnapshotService struct {
	roomRepo    *repository.RoomRepository
	bookingRepo *repository.BookingRepository
	posRepo     *repository.POSRepository
	guestRepo   *repository.GuestRepository
	logger      *zap.Logger
}

func NewSnapshotService(
	roomRepo *repository.RoomRepository,
	bookingRepo *repository.BookingRepository,
	posRepo *repository.POSRepository,
	guestRepo *repository.GuestRepository,
	logger *zap.Logger,
) *SnapshotService {
	return &SnapshotService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		posRepo:     posRepo,
		guestRepo:   guestRepo,
		logger:      logger,
	}
}

// Load reads all tables the analytics pipeline needs in one pass.
func (s *SnapshotService) Load(ctx context.Context) (*analytics.Snapshot, error) {
	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	guests, err := s.guestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	transactions, err := s.posRepo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pos transactions: %w", err)
	}

	items, err := s.posRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pos transaction items: %w", err)
	}

	products, err := s.posRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pos products: %w", err)
	}

	categories, err := s.posRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pos categories: %w", err)
	}

	s.logger.Debug("analytics snapshot loaded",
		zap.Int("rooms", len(rooms)),
		zap.Int("guests", len(guests)),
		zap.Int("bookings", len(bookings)),
		zap.Int("transactions", len(transactions)),
	)

	return &analytics.Snapshot{
		Rooms:        rooms,
		Guests:       guests,
		Bookings:     bookings,
		Transactions: transactions,
		Items:        items,
		Products:     products,
		Categories:   categories,
	}, nil
}
