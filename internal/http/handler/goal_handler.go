package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// @Summary Create goal
// @Description Creates a revenue, occupancy or booking target for a month, quarter or year.
// @Tags Goals
// @Accept json
// @Produce json
// @Param goal body domain.CreateGoalRequest true "Goal"
// @Success 201 {object} domain.GoalDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /goals [post]
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create goal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// @Summary List goals
// @Tags Goals
// @Produce json
// @Success 200 {array} domain.GoalDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /goals [get]
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list goals", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

// @Summary Delete goal
// @Tags Goals
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	if err := h.goalService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "goal not found")
			return
		}
		h.logger.Error("failed to delete goal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Get goal progress
// @Description Current value, pacing status and days remaining for every goal.
// @Tags Goals
// @Produce json
// @Success 200 {array} domain.GoalProgress
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /goals/progress [get]
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.goalService.Progress(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to compute goal progress", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute goal progress")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}
