package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/mailer"
	"github.com/minima-hotel/backoffice-api/internal/storage"
	"go.uber.org/zap"
)

// scheduleSource is the slice of ScheduleService the dispatcher needs.
type scheduleSource interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledReport, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

// ReportService builds report bundles and delivers them by email. Sent
// reports are optionally archived to blob storage as JSON.
type ReportService struct {
	snapshots snapshotLoader
	schedules scheduleSource
	sender    mailer.Sender
	archive   storage.Archive

	hotelName      string
	mailEnabled    bool
	archiveEnabled bool

	logger *zap.Logger
}

func NewReportService(
	snapshots snapshotLoader,
	schedules scheduleSource,
	sender mailer.Sender,
	archive storage.Archive,
	appCfg *config.AppConfig,
	mailCfg *config.MailConfig,
	reportsCfg *config.ReportsConfig,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		snapshots:      snapshots,
		schedules:      schedules,
		sender:         sender,
		archive:        archive,
		hotelName:      appCfg.HotelName,
		mailEnabled:    mailCfg.Enabled,
		archiveEnabled: reportsCfg.ArchiveEnabled,
		logger:         logger,
	}
}

// Build computes the report bundle for a frequency without sending anything.
func (s *ReportService) Build(ctx context.Context, frequency domain.ReportFrequency, now time.Time) (*domain.ReportBundle, analytics.Period, error) {
	period := analytics.ReportPeriod(frequency, now)

	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, period, err
	}

	bundle := analytics.BuildReport(snap, period)
	return &bundle, period, nil
}

// SendNow builds and emails a one-off report outside any schedule.
func (s *ReportService) SendNow(ctx context.Context, req *domain.SendReportRequest, now time.Time) error {
	if !s.mailEnabled {
		return ErrMailDisabled
	}

	bundle, period, err := s.Build(ctx, req.ReportType, now)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, req.Email, req.ReportType, bundle, req.Sections, period, now); err != nil {
		return err
	}

	s.logger.Info("report sent on demand",
		zap.String("to", req.Email),
		zap.String("frequency", string(req.ReportType)),
	)
	return nil
}

// DispatchDue sends every schedule that is due at the given instant. A
// failure on one schedule is logged and does not stop the rest; the count of
// successful sends is returned.
func (s *ReportService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.schedules.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	if !s.mailEnabled {
		s.logger.Warn("schedules are due but mail delivery is disabled", zap.Int("due", len(due)))
		return 0, nil
	}

	sent := 0
	for i := range due {
		report := &due[i]
		if err := s.dispatch(ctx, report, now); err != nil {
			s.logger.Error("failed to dispatch scheduled report",
				zap.String("schedule_id", report.ID.String()),
				zap.String("to", report.Email),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *ReportService) dispatch(ctx context.Context, report *domain.ScheduledReport, now time.Time) error {
	bundle, period, err := s.Build(ctx, report.Frequency, now)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, report.Email, report.Frequency, bundle, report.Sections, period, now); err != nil {
		return err
	}

	if err := s.schedules.MarkSent(ctx, report.ID, now); err != nil {
		// The email went out; a stale last_sent only risks a duplicate
		// on the next sweep, so log and carry on.
		s.logger.Error("failed to record report dispatch",
			zap.String("schedule_id", report.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("scheduled report dispatched",
		zap.String("schedule_id", report.ID.String()),
		zap.String("to", report.Email),
		zap.String("frequency", string(report.Frequency)),
	)
	return nil
}

func (s *ReportService) deliver(ctx context.Context, email string, frequency domain.ReportFrequency, bundle *domain.ReportBundle, sections []string, period analytics.Period, now time.Time) error {
	html, err := mailer.RenderReport(s.hotelName, frequency, bundle, sections, period.Start, period.End, now)
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		To:          email,
		Subject:     mailer.ReportSubject(s.hotelName, frequency, now),
		HTMLContent: html,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.archiveBundle(ctx, email, frequency, bundle, now)
	return nil
}

// archiveBundle stores a JSON copy of the sent report. Archive failures
// never fail the send.
func (s *ReportService) archiveBundle(ctx context.Context, email string, frequency domain.ReportFrequency, bundle *domain.ReportBundle, now time.Time) {
	if !s.archiveEnabled || s.archive == nil {
		return
	}

	record := struct {
		Email     string               `json:"email"`
		Frequency string               `json:"frequency"`
		SentAt    time.Time            `json:"sentAt"`
		Bundle    *domain.ReportBundle `json:"bundle"`
	}{
		Email:     email,
		Frequency: string(frequency),
		SentAt:    now.UTC(),
		Bundle:    bundle,
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("failed to encode report archive", zap.Error(err))
		return
	}

	key := storage.ArchiveKey(frequency, now)
	if _, err := s.archive.Put(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		s.logger.Error("failed to archive sent report",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
