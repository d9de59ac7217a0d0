package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

type GoalService struct {
	goalRepo  *repository.GoalRepository
	snapshots snapshotLoader
	logger    *zap.Logger
}

func NewGoalService(goalRepo *repository.GoalRepository, snapshots snapshotLoader, logger *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo:  goalRepo,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *GoalService) Create(ctx context.Context, req *domain.CreateGoalRequest) (*domain.GoalDTO, error) {
	goal := &domain.Goal{
		Type:   req.Type,
		Target: req.Target,
		Period: req.Period,
		Month:  req.Month,
		Year:   req.Year,
	}

	if userCtx, ok := auth.FromContext(ctx); ok {
		goal.CreatedBy = userCtx.Email
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.Info("goal created",
		zap.String("goal_id", goal.ID.String()),
		zap.String("type", string(goal.Type)),
		zap.String("period", string(goal.Period)),
	)

	dto := goal.ToDTO()
	return &dto, nil
}

func (s *GoalService) List(ctx context.Context) ([]domain.GoalDTO, error) {
	goals, err := s.goalRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	dtos := make([]domain.GoalDTO, 0, len(goals))
	for i := range goals {
		dtos = append(dtos, goals[i].ToDTO())
	}
	return dtos, nil
}

func (s *GoalService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.goalRepo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	s.logger.Info("goal deleted", zap.String("goal_id", id.String()))
	return nil
}

// Progress computes pacing for every goal against the current data.
func (s *GoalService) Progress(ctx context.Context, now time.Time) ([]domain.GoalProgress, error) {
	goals, err := s.goalRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.GoalProgressAll(snap, goals, now), nil
}
