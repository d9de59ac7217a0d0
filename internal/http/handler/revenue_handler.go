package handler

import (
	"net/http"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const defaultTopProducts = 10

type RevenueHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewRevenueHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *RevenueHandler {
	return &RevenueHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// @Summary Get monthly revenue
// @Description Revenue per month split into rooms, restaurant, spa and other (default trailing 6 months).
// @Tags Revenue
// @Produce json
// @Param months query int false "Number of trailing months" default(6)
// @Success 200 {array} domain.MonthlyRevenue
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /revenue/monthly [get]
func (h *RevenueHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	months := parseIntParam(r, "months", defaultRevenueMonths)
	if months < 1 || months > 36 {
		respondWithError(w, http.StatusBadRequest, "months must be between 1 and 36")
		return
	}

	series, err := h.analyticsService.MonthlyRevenue(r.Context(), monthsWindow(time.Now().UTC(), months))
	if err != nil {
		h.logger.Error("failed to compute monthly revenue", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute monthly revenue")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// @Summary Get revenue summary
// @Description Aggregated room and POS revenue for the window (default trailing 30 days).
// @Tags Revenue
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.RevenueSummary
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /revenue/summary [get]
func (h *RevenueHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, time.Now().UTC(), defaultWindowDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.analyticsService.RevenueSummary(r.Context(), period)
	if err != nil {
		h.logger.Error("failed to compute revenue summary", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute revenue summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// @Summary Get POS revenue by category
// @Tags Revenue
// @Produce json
// @Success 200 {array} domain.POSCategoryRevenue
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /revenue/pos-categories [get]
func (h *RevenueHandler) GetPOSCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.analyticsService.CategoryRevenue(r.Context())
	if err != nil {
		h.logger.Error("failed to compute category revenue", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute category revenue")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// @Summary Get payment method breakdown
// @Tags Revenue
// @Produce json
// @Success 200 {array} domain.PaymentMethodBreakdown
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /revenue/payment-methods [get]
func (h *RevenueHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.analyticsService.PaymentMethods(r.Context())
	if err != nil {
		h.logger.Error("failed to compute payment methods", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute payment method breakdown")
		return
	}

	respondJSON(w, http.StatusOK, methods)
}

// @Summary Get top selling products
// @Tags Revenue
// @Produce json
// @Param limit query int false "Number of products" default(10)
// @Success 200 {array} domain.TopProduct
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /revenue/top-products [get]
func (h *RevenueHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultTopProducts)
	if limit < 1 || limit > 100 {
		respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	products, err := h.analyticsService.TopProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to compute top products", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute top products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}
