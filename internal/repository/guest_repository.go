package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	var guest domain.Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) ListAll(ctx context.Context) ([]domain.Guest, error) {
	var guests []domain.Guest
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&guests).Error
	return guests, err
}
