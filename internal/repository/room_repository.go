package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListAll returns every room, active or not. Inactive rooms still carry
// historical bookings so they stay visible to the analytics pipeline.
func (r *RoomRepository) ListAll(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Order("number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).Count(&count).Error
	return int(count), err
}
