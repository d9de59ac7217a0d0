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

type ReportHandler struct {
	scheduleService *service.ScheduleService
	reportService   *service.ReportService
	logger          *zap.Logger
}

func NewReportHandler(scheduleService *service.ScheduleService, reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		scheduleService: scheduleService,
		reportService:   reportService,
		logger:          logger,
	}
}

// @Summary Create report schedule
// @Description Subscribes an email address to a recurring daily, weekly or monthly report.
// @Tags Reports
// @Accept json
// @Produce json
// @Param schedule body domain.CreateScheduledReportRequest true "Schedule"
// @Success 201 {object} domain.ScheduledReportDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/schedules [post]
func (h *ReportHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateScheduledReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	schedule, err := h.scheduleService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create report schedule", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create report schedule")
		return
	}

	respondJSON(w, http.StatusCreated, schedule)
}

// @Summary List report schedules
// @Tags Reports
// @Produce json
// @Success 200 {array} domain.ScheduledReportDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/schedules [get]
func (h *ReportHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list report schedules", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list report schedules")
		return
	}

	respondJSON(w, http.StatusOK, schedules)
}

// @Summary Update report schedule
// @Description Partial update; omitted fields keep their stored values.
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param schedule body domain.UpdateScheduledReportRequest true "Fields to update"
// @Success 200 {object} domain.ScheduledReportDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/schedules/{id} [put]
func (h *ReportHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid schedule ID")
		return
	}

	var req domain.UpdateScheduledReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	schedule, err := h.scheduleService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "schedule not found")
			return
		}
		h.logger.Error("failed to update report schedule", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to update report schedule")
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// @Summary Delete report schedule
// @Tags Reports
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/schedules/{id} [delete]
func (h *ReportHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid schedule ID")
		return
	}

	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "schedule not found")
			return
		}
		h.logger.Error("failed to delete report schedule", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to delete report schedule")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Send report now
// @Description Builds and emails a report immediately, outside any schedule.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body domain.SendReportRequest true "Report to send"
// @Success 202 {object} map[string]string
// @Failure 400 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/send [post]
func (h *ReportHandler) SendNow(w http.ResponseWriter, r *http.Request) {
	var req domain.SendReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.reportService.SendNow(r.Context(), &req, time.Now().UTC()); err != nil {
		if errors.Is(err, service.ErrMailDisabled) {
			respondWithError(w, http.StatusServiceUnavailable, "mail delivery is disabled")
			return
		}
		h.logger.Error("failed to send report", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to send report")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent", "email": req.Email})
}
