package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

const (
	defaultReportDayOfWeek  = 1 // Monday
	defaultReportDayOfMonth = 1
)

// ScheduleService manages report subscriptions and decides when each one is
// due for dispatch.
type ScheduleService struct {
	scheduleRepo *repository.ScheduledReportRepository
	logger       *zap.Logger
}

func NewScheduleService(scheduleRepo *repository.ScheduledReportRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

func (s *ScheduleService) Create(ctx context.Context, req *domain.CreateScheduledReportRequest) (*domain.ScheduledReportDTO, error) {
	report := &domain.ScheduledReport{
		Email:      req.Email,
		Frequency:  req.Frequency,
		DayOfWeek:  req.DayOfWeek,
		DayOfMonth: req.DayOfMonth,
		Hour:       req.Hour,
		Enabled:    true,
		Sections:   pq.StringArray(req.Sections),
	}
	if req.Enabled != nil {
		report.Enabled = *req.Enabled
	}
	if len(report.Sections) == 0 {
		report.Sections = pq.StringArray{string(domain.ReportSectionFull)}
	}

	if userCtx, ok := auth.FromContext(ctx); ok {
		report.CreatedBy = userCtx.Email
	}

	if err := s.scheduleRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create scheduled report: %w", err)
	}

	s.logger.Info("scheduled report created",
		zap.String("schedule_id", report.ID.String()),
		zap.String("frequency", string(report.Frequency)),
	)

	dto := report.ToDTO()
	return &dto, nil
}

func (s *ScheduleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledReport, error) {
	report, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return report, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]domain.ScheduledReportDTO, error) {
	reports, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled reports: %w", err)
	}

	dtos := make([]domain.ScheduledReportDTO, 0, len(reports))
	for i := range reports {
		dtos = append(dtos, reports[i].ToDTO())
	}
	return dtos, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateScheduledReportRequest) (*domain.ScheduledReportDTO, error) {
	report, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Email != nil {
		report.Email = *req.Email
	}
	if req.Frequency != nil {
		report.Frequency = *req.Frequency
	}
	if req.DayOfWeek != nil {
		report.DayOfWeek = req.DayOfWeek
	}
	if req.DayOfMonth != nil {
		report.DayOfMonth = req.DayOfMonth
	}
	if req.Hour != nil {
		report.Hour = *req.Hour
	}
	if req.Enabled != nil {
		report.Enabled = *req.Enabled
	}
	if req.Sections != nil {
		report.Sections = pq.StringArray(req.Sections)
	}

	if err := s.scheduleRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update scheduled report: %w", err)
	}

	dto := report.ToDTO()
	return &dto, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scheduled report: %w", err)
	}
	s.logger.Info("scheduled report deleted", zap.String("schedule_id", id.String()))
	return nil
}

// ListDue returns the enabled schedules that should be dispatched now.
func (s *ScheduleService) ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledReport, error) {
	reports, err := s.scheduleRepo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled schedules: %w", err)
	}

	var due []domain.ScheduledReport
	for i := range reports {
		if IsDue(&reports[i], now) {
			due = append(due, reports[i])
		}
	}
	return due, nil
}

// MarkSent records a successful dispatch.
func (s *ScheduleService) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return s.scheduleRepo.MarkSent(ctx, id, sentAt)
}

// IsDue reports whether a schedule should fire at the given instant. A
// schedule fires during its configured hour on its configured day, at most
// once per hour: a LastSent stamp inside the current hour suppresses it.
func IsDue(report *domain.ScheduledReport, now time.Time) bool {
	if !report.Enabled {
		return false
	}
	if now.Hour() != report.Hour {
		return false
	}

	switch report.Frequency {
	case domain.ReportFrequencyWeekly:
		day := defaultReportDayOfWeek
		if report.DayOfWeek != nil {
			day = *report.DayOfWeek
		}
		if int(now.Weekday()) != day {
			return false
		}
	case domain.ReportFrequencyMonthly:
		day := defaultReportDayOfMonth
		if report.DayOfMonth != nil {
			day = *report.DayOfMonth
		}
		// A day-of-month past the month's end fires on the last day,
		// so a "31st" schedule still goes out in February.
		last := lastDayOfMonth(now)
		if day > last {
			day = last
		}
		if now.Day() != day {
			return false
		}
	case domain.ReportFrequencyDaily:
		// Every day at the configured hour.
	default:
		return false
	}

	if report.LastSent == nil {
		return true
	}

	hourStart := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return report.LastSent.Before(hourStart)
}

func lastDayOfMonth(now time.Time) int {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
