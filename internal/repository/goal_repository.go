package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Goal{}, "id = ?", id).Error
}

func (r *GoalRepository) ListAll(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).Order("year DESC, month DESC, created_at DESC").Find(&goals).Error
	return goals, err
}

// ListByYear returns goals whose window starts in the given calendar year.
func (r *GoalRepository) ListByYear(ctx context.Context, year int) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).Where("year = ?", year).Order("month ASC, created_at DESC").Find(&goals).Error
	return goals, err
}
