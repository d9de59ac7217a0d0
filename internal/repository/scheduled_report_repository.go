package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ScheduledReportRepository struct {
	db *gorm.DB
}

func NewScheduledReportRepository(db *gorm.DB) *ScheduledReportRepository {
	return &ScheduledReportRepository{db: db}
}

func (r *ScheduledReportRepository) Create(ctx context.Context, report *domain.ScheduledReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ScheduledReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledReport, error) {
	var report domain.ScheduledReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ScheduledReportRepository) Update(ctx context.Context, report *domain.ScheduledReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *ScheduledReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ScheduledReport{}, "id = ?", id).Error
}

func (r *ScheduledReportRepository) ListAll(ctx context.Context) ([]domain.ScheduledReport, error) {
	var reports []domain.ScheduledReport
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&reports).Error
	return reports, err
}

// ListEnabled returns schedules the dispatcher should consider on its sweep.
func (r *ScheduledReportRepository) ListEnabled(ctx context.Context) ([]domain.ScheduledReport, error) {
	var reports []domain.ScheduledReport
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("created_at ASC").Find(&reports).Error
	return reports, err
}

// MarkSent records the dispatch time without touching other columns, so a
// concurrent edit of the schedule is not overwritten.
func (r *ScheduledReportRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.ScheduledReport{}).
		Where("id = ?", id).
		Update("last_sent", sentAt).Error
}
