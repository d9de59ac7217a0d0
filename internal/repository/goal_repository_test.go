package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGoal(goalType domain.GoalType, target float64, year, month int) *domain.Goal {
	return &domain.Goal{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Type:      goalType,
		Target:    target,
		Period:    domain.GoalPeriodMonthly,
		Month:     month,
		Year:      year,
		CreatedBy: "manager@minimahotel.example",
	}
}

func TestGoalRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)
	ctx := context.Background()

	goal := newGoal(domain.GoalTypeRevenue, 500000, 2026, 5)
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalTypeRevenue, got.Type)
	assert.Equal(t, 500000.0, got.Target)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, 5, got.Month)
}

func TestGoalRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGoalRepository_Update(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)
	ctx := context.Background()

	goal := newGoal(domain.GoalTypeOccupancy, 75, 2026, 3)
	require.NoError(t, repo.Create(ctx, goal))

	goal.Target = 80
	require.NoError(t, repo.Update(ctx, goal))

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Target)
}

func TestGoalRepository_Delete(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)
	ctx := context.Background()

	goal := newGoal(domain.GoalTypeBookings, 120, 2026, 1)
	require.NoError(t, repo.Create(ctx, goal))
	require.NoError(t, repo.Delete(ctx, goal.ID))

	_, err := repo.GetByID(ctx, goal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGoalRepository_ListAll_OrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 1, 2025, 11)))
	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 2, 2026, 2)))
	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 3, 2026, 7)))

	goals, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 3)

	assert.Equal(t, 2026, goals[0].Year)
	assert.Equal(t, 7, goals[0].Month)
	assert.Equal(t, 2026, goals[1].Year)
	assert.Equal(t, 2, goals[1].Month)
	assert.Equal(t, 2025, goals[2].Year)
}

func TestGoalRepository_ListByYear(t *testing.T) {
	db := setupTestDB(t, goalsSchema)
	repo := repository.NewGoalRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 1, 2025, 4)))
	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 2, 2026, 8)))
	require.NoError(t, repo.Create(ctx, newGoal(domain.GoalTypeRevenue, 3, 2026, 0)))

	goals, err := repo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, goals, 2)

	// Ascending by month within the year
	assert.Equal(t, 0, goals[0].Month)
	assert.Equal(t, 8, goals[1].Month)
}
