package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).Preload("Room").Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListAll returns every booking with its room preloaded. The analytics
// snapshot works over the full history, so there is no window filter here.
func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).Preload("Room").Order("check_in ASC").Find(&bookings).Error
	return bookings, err
}

