package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuditLog(action string, category domain.AuditCategory, userID string, createdAt time.Time) *domain.AuditLog {
	return &domain.AuditLog{
		ID:          uuid.New(),
		Action:      action,
		Category:    category,
		Description: "POST /api/v1/goals",
		UserID:      userID,
		UserName:    "Alex Reyes",
		UserEmail:   "alex.reyes@minimahotel.example",
		Metadata:    "{}",
		IPAddress:   "10.0.0.5",
		CreatedAt:   createdAt,
	}
}

func TestAuditLogRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t, auditLogsSchema)
	repo := repository.NewAuditLogRepository(db)
	ctx := context.Background()

	entry := newAuditLog("goal_created", domain.AuditCategoryGoal, "user-1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "goal_created", got.Action)
	assert.Equal(t, domain.AuditCategoryGoal, got.Category)
	assert.Equal(t, "user-1", got.UserID)
}

func TestAuditLogRepository_List_Pagination(t *testing.T) {
	db := setupTestDB(t, auditLogsSchema)
	repo := repository.NewAuditLogRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := newAuditLog("goal_created", domain.AuditCategoryGoal, "user-1", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, entry))
	}

	logs, total, err := repo.List(ctx, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 2)

	// Newest first
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))

	logs, _, err = repo.List(ctx, nil, 3, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestAuditLogRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t, auditLogsSchema)
	repo := repository.NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newAuditLog("goal_created", domain.AuditCategoryGoal, "user-1", now)))
	require.NoError(t, repo.Create(ctx, newAuditLog("report_schedule_created", domain.AuditCategoryReport, "user-2", now.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newAuditLog("goal_deleted", domain.AuditCategoryGoal, "user-2", now.Add(2*time.Hour))))

	category := domain.AuditCategoryGoal
	logs, total, err := repo.List(ctx, &repository.AuditLogFilter{Category: &category}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	logs, total, err = repo.List(ctx, &repository.AuditLogFilter{UserID: "user-2"}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	logs, total, err = repo.List(ctx, &repository.AuditLogFilter{Action: "goal_deleted"}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "goal_deleted", logs[0].Action)

	start := now.Add(30 * time.Minute)
	end := now.Add(90 * time.Minute)
	_, total, err = repo.List(ctx, &repository.AuditLogFilter{StartTime: &start, EndTime: &end}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAuditLogRepository_DeleteOlderThan(t *testing.T) {
	db := setupTestDB(t, auditLogsSchema)
	repo := repository.NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newAuditLog("goal_created", domain.AuditCategoryGoal, "user-1", now.AddDate(0, -7, 0))))
	require.NoError(t, repo.Create(ctx, newAuditLog("goal_created", domain.AuditCategoryGoal, "user-1", now)))

	deleted, err := repo.DeleteOlderThan(ctx, now.AddDate(0, -6, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.List(ctx, nil, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
