package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AuditRetentionJobName is the name of the audit log retention job
const AuditRetentionJobName = "audit_retention"

// auditRetentionSchedule runs the nightly prune at 03:00, outside hotel
// front-desk hours.
const auditRetentionSchedule = "0 0 3 * * *"

// DefaultRetentionTimeout bounds how long a single prune may run.
const DefaultRetentionTimeout = 2 * time.Minute

// AuditPruner deletes audit entries older than a cutoff and reports how
// many rows went away.
type AuditPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditRetentionJob enforces the audit log retention policy by deleting
// entries older than the configured number of days.
type AuditRetentionJob struct {
	pruner        AuditPruner
	logger        *zap.Logger
	retentionDays int
	timeout       time.Duration
}

// NewAuditRetentionJob creates a new retention job.
func NewAuditRetentionJob(pruner AuditPruner, logger *zap.Logger, retentionDays int, timeout time.Duration) *AuditRetentionJob {
	if timeout <= 0 {
		timeout = DefaultRetentionTimeout
	}
	return &AuditRetentionJob{
		pruner:        pruner,
		logger:        logger,
		retentionDays: retentionDays,
		timeout:       timeout,
	}
}

// Run executes one prune pass.
func (j *AuditRetentionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.pruner.PruneOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("audit retention prune failed",
			zap.Error(err),
			zap.Time("cutoff", cutoff))
		return
	}

	if deleted > 0 {
		j.logger.Info("audit retention prune completed",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
}

// RegisterAuditRetentionJob registers the nightly retention job. A
// retentionDays of zero or less disables pruning and registers nothing.
func RegisterAuditRetentionJob(scheduler *Scheduler, pruner AuditPruner, logger *zap.Logger, retentionDays int) error {
	if retentionDays <= 0 {
		logger.Info("audit retention disabled, entries are kept forever")
		return nil
	}
	job := NewAuditRetentionJob(pruner, logger, retentionDays, DefaultRetentionTimeout)
	return scheduler.AddJob(AuditRetentionJobName, auditRetentionSchedule, job.Run)
}
