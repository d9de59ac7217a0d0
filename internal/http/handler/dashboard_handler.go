package handler

import (
	"net/http"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const (
	defaultWindowDays     = 30
	defaultRevenueMonths  = 6
	defaultForecastMonths = 3
)

type DashboardHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewDashboardHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// @Summary Get dashboard KPIs
// @Description Returns today's headline figures: occupancy rate, rooms occupied,
// @Description available rooms, month-to-date revenue, ADR and RevPAR.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.KPIBlock
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	kpis, err := h.analyticsService.KPIs(r.Context(), now, monthsWindow(now, defaultRevenueMonths))
	if err != nil {
		h.logger.Error("failed to compute KPIs", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute KPIs")
		return
	}

	respondJSON(w, http.StatusOK, kpis)
}

// @Summary Get room type summaries
// @Description Room counts, occupancy and rates grouped by room type for a date (default today).
// @Tags Dashboard
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.RoomTypeSummary
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/room-types [get]
func (h *DashboardHandler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	summaries, err := h.analyticsService.RoomTypes(r.Context(), date)
	if err != nil {
		h.logger.Error("failed to compute room types", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute room type summaries")
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// @Summary Get recent bookings
// @Description The ten most recent bookings touching the window (default trailing 30 days).
// @Tags Dashboard
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.BookingSummary
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/bookings [get]
func (h *DashboardHandler) GetRecentBookings(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.analyticsService.RecentBookings(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to list recent bookings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list recent bookings")
		return
	}

	respondJSON(w, http.StatusOK, bookings)
}

// @Summary Get booking statistics
// @Description Booking counts by status and channel for the window (default trailing 30 days).
// @Tags Dashboard
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.BookingStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/booking-stats [get]
func (h *DashboardHandler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.analyticsService.BookingStats(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute booking stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute booking statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
