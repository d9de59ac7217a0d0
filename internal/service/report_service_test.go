package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSnapshots struct {
	snap *analytics.Snapshot
	err  error
}

func (f *fakeSnapshots) Load(ctx context.Context) (*analytics.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeSchedules struct {
	due    []domain.ScheduledReport
	sent   []uuid.UUID
	dueErr error
}

func (f *fakeSchedules) ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledReport, error) {
	return f.due, f.dueErr
}

func (f *fakeSchedules) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}

type fakeSender struct {
	messages []*mailer.Message
	failFor  string
}

func (f *fakeSender) Send(ctx context.Context, msg *mailer.Message) error {
	if f.failFor != "" && msg.To == f.failFor {
		return errors.New("smtp rejected")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func newTestReportService(snapshots snapshotLoader, schedules scheduleSource, sender mailer.Sender, mailEnabled bool) *ReportService {
	return NewReportService(
		snapshots,
		schedules,
		sender,
		nil,
		&config.AppConfig{HotelName: "Minima Hotel"},
		&config.MailConfig{Enabled: mailEnabled},
		&config.ReportsConfig{ArchiveEnabled: false},
		zap.NewNop(),
	)
}

func testSchedule(freq domain.ReportFrequency, email string) domain.ScheduledReport {
	return domain.ScheduledReport{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Email:     email,
		Frequency: freq,
		Hour:      8,
		Enabled:   true,
	}
}

func TestSendNow(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, &fakeSchedules{}, sender, true)

	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	err := svc.SendNow(context.Background(), &domain.SendReportRequest{
		Email:      "manager@example.com",
		ReportType: domain.ReportFrequencyDaily,
	}, now)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, "manager@example.com", msg.To)
	assert.Contains(t, msg.Subject, "daily report")
	assert.Contains(t, msg.HTMLContent, "Minima Hotel")
}

func TestSendNowMailDisabled(t *testing.T) {
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, &fakeSchedules{}, &fakeSender{}, false)

	err := svc.SendNow(context.Background(), &domain.SendReportRequest{
		Email:      "manager@example.com",
		ReportType: domain.ReportFrequencyDaily,
	}, time.Now())
	assert.ErrorIs(t, err, ErrMailDisabled)
}

func TestDispatchDue(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduledReport{
		testSchedule(domain.ReportFrequencyDaily, "a@example.com"),
		testSchedule(domain.ReportFrequencyWeekly, "b@example.com"),
	}}
	sender := &fakeSender{}
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, schedules, sender, true)

	sent, err := svc.DispatchDue(context.Background(), time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	assert.Len(t, sender.messages, 2)
	assert.Len(t, schedules.sent, 2)
}

func TestDispatchDueContinuesOnFailure(t *testing.T) {
	first := testSchedule(domain.ReportFrequencyDaily, "broken@example.com")
	second := testSchedule(domain.ReportFrequencyDaily, "ok@example.com")
	schedules := &fakeSchedules{due: []domain.ScheduledReport{first, second}}
	sender := &fakeSender{failFor: "broken@example.com"}
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, schedules, sender, true)

	sent, err := svc.DispatchDue(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, schedules.sent, 1)
	assert.Equal(t, second.ID, schedules.sent[0], "only the delivered schedule is stamped")
}

func TestDispatchDueMailDisabled(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduledReport{
		testSchedule(domain.ReportFrequencyDaily, "a@example.com"),
	}}
	sender := &fakeSender{}
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, schedules, sender, false)

	sent, err := svc.DispatchDue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, sender.messages)
	assert.Empty(t, schedules.sent)
}

func TestBuildUsesFrequencyWindow(t *testing.T) {
	svc := newTestReportService(&fakeSnapshots{snap: &analytics.Snapshot{}}, &fakeSchedules{}, &fakeSender{}, true)

	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	_, period, err := svc.Build(context.Background(), domain.ReportFrequencyWeekly, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), period.Start)
	assert.Equal(t, now, period.End)
}
