package handler

import (
	"net/http"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type OccupancyHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewOccupancyHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *OccupancyHandler {
	return &OccupancyHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// @Summary Get daily occupancy
// @Description Occupancy rate per day over the window (default trailing 30 days).
// @Tags Occupancy
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.DailyOccupancy
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /occupancy/daily [get]
func (h *OccupancyHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	series, err := h.analyticsService.DailyOccupancy(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute daily occupancy", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute daily occupancy")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// @Summary Get monthly occupancy
// @Description Occupancy rate per month (default trailing 6 months).
// @Tags Occupancy
// @Produce json
// @Param months query int false "Number of trailing months" default(6)
// @Success 200 {array} domain.MonthlyOccupancy
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /occupancy/monthly [get]
func (h *OccupancyHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	months := parseIntParam(r, "months", defaultRevenueMonths)
	if months < 1 || months > 36 {
		respondWithError(w, http.StatusBadRequest, "months must be between 1 and 36")
		return
	}

	series, err := h.analyticsService.MonthlyOccupancy(r.Context(), monthsWindow(time.Now().UTC(), months))
	if err != nil {
		h.logger.Error("failed to compute monthly occupancy", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute monthly occupancy")
		return
	}

	respondJSON(w, http.StatusOK, series)
}
