package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReportDispatchJobName is the name of the scheduled report dispatch job
const ReportDispatchJobName = "report_dispatch"

// DefaultDispatchTimeout bounds how long a single dispatch sweep may run.
const DefaultDispatchTimeout = 5 * time.Minute

// ReportDispatcher defines the interface for sending due scheduled reports.
// This interface allows the job to call the service without importing the service package directly.
type ReportDispatcher interface {
	// DispatchDue builds and sends every scheduled report that is due at the given time.
	// Returns the number of reports sent.
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

// ReportDispatchJob periodically sweeps the scheduled reports and sends
// the ones whose schedule matches the current time.
type ReportDispatchJob struct {
	dispatcher ReportDispatcher
	logger     *zap.Logger
	timeout    time.Duration
}

// NewReportDispatchJob creates a new report dispatch job.
// The timeout controls how long a single sweep is allowed to run.
func NewReportDispatchJob(dispatcher ReportDispatcher, logger *zap.Logger, timeout time.Duration) *ReportDispatchJob {
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	return &ReportDispatchJob{
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes a dispatch sweep.
// This is called by the scheduler according to the cron expression.
func (j *ReportDispatchJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	sent, err := j.dispatcher.DispatchDue(ctx, start)
	if err != nil {
		j.logger.Error("report dispatch sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if sent > 0 {
		j.logger.Info("report dispatch sweep completed",
			zap.Int("reports_sent", sent),
			zap.Duration("duration", time.Since(start)))
	}
}

// RegisterReportDispatchJob registers the report dispatch job with the scheduler.
// The interval controls how often the sweep runs (e.g. 15 minutes); a sweep
// close to the top of the hour catches schedules for that hour, and the
// dispatcher itself guarantees at-most-once delivery per scheduled hour.
func RegisterReportDispatchJob(scheduler *Scheduler, dispatcher ReportDispatcher, logger *zap.Logger, interval time.Duration, timeout time.Duration) error {
	job := NewReportDispatchJob(dispatcher, logger, timeout)
	return scheduler.AddJob(ReportDispatchJobName, fmt.Sprintf("@every %s", interval), job.Run)
}
