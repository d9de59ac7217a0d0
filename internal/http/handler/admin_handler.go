package handler

import (
	"net/http"

	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AdminHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAdminHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// @Summary Refresh analytics cache
// @Description Drops every cached analytics result so the next read recomputes from live data.
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/refresh [post]
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.analyticsService.RefreshAll()
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
