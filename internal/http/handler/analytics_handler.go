package handler

import (
	"net/http"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// @Summary Compare periods
// @Description Revenue, occupancy, ADR, RevPAR and booking metrics for the window
// @Description against the immediately preceding window of equal length.
// @Tags Analytics
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.PeriodComparison
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/comparison [get]
func (h *AnalyticsHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := h.analyticsService.Comparison(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute period comparison", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute period comparison")
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// @Summary Get operational alerts
// @Description Alerts derived from the period comparison, ordered by severity.
// @Tags Analytics
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.Alert
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/alerts [get]
func (h *AnalyticsHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	alerts, err := h.analyticsService.Alerts(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to derive alerts", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to derive alerts")
		return
	}

	respondJSON(w, http.StatusOK, alerts)
}

// @Summary Get forecast
// @Description Revenue, occupancy and booking projections from six months of history.
// @Tags Analytics
// @Produce json
// @Param months query int false "Months ahead (1-12)" default(3)
// @Success 200 {object} domain.ForecastResult
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/forecast [get]
func (h *AnalyticsHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	months := parseIntParam(r, "months", defaultForecastMonths)

	forecast, err := h.analyticsService.Forecast(r.Context(), time.Now().UTC(), months)
	if err != nil {
		h.logger.Error("failed to compute forecast", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute forecast")
		return
	}

	respondJSON(w, http.StatusOK, forecast)
}

// @Summary Get guest analytics
// @Description Channel split, stay distribution, repeat rate and top guests.
// @Description Without start/end the whole history is analysed.
// @Tags Analytics
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.GuestAnalytics
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/guests [get]
func (h *AnalyticsHandler) GetGuests(w http.ResponseWriter, r *http.Request) {
	period, err := parseOptionalPeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	guests, err := h.analyticsService.Guests(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute guest analytics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute guest analytics")
		return
	}

	respondJSON(w, http.StatusOK, guests)
}

// @Summary Get room performance
// @Description Per-room revenue, occupancy and ranking for the window (default trailing 30 days).
// @Tags Analytics
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.RoomPerformanceReport
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/rooms [get]
func (h *AnalyticsHandler) GetRoomPerformance(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.analyticsService.RoomPerformance(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute room performance", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute room performance")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// @Summary Get peak analysis
// @Description Booking activity by hour, weekday and month, with weekday/weekend split.
// @Description Without start/end the whole history is analysed.
// @Tags Analytics
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.PeakAnalysis
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /analytics/peaks [get]
func (h *AnalyticsHandler) GetPeaks(w http.ResponseWriter, r *http.Request) {
	period, err := parseOptionalPeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	peaks, err := h.analyticsService.Peaks(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute peak analysis", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute peak analysis")
		return
	}

	respondJSON(w, http.StatusOK, peaks)
}
