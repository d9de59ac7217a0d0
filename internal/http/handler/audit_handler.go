package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// AuditHandler handles audit log related HTTP requests
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// auditListResponse wraps a page of audit entries
type auditListResponse struct {
	Items    []domain.AuditLogDTO `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// @Summary List audit log entries
// @Description Paginated audit trail, newest first. Filterable by user, action, category and time range.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Param userId query string false "Filter by user ID"
// @Param action query string false "Filter by action"
// @Param category query string false "Filter by category"
// @Param start query string false "From date (YYYY-MM-DD)"
// @Param end query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} auditListResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := parseIntParam(r, "pageSize", defaultAuditPageSize)
	if pageSize < 1 || pageSize > maxAuditPageSize {
		pageSize = defaultAuditPageSize
	}

	params := service.AuditLogQueryParams{
		UserID:   r.URL.Query().Get("userId"),
		Action:   r.URL.Query().Get("action"),
		Page:     page,
		PageSize: pageSize,
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		category := domain.AuditCategory(raw)
		params.Category = &category
	}
	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartTime = &start
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
			return
		}
		endOfDay := end.Add(24*time.Hour - time.Millisecond)
		params.EndTime = &endOfDay
	}

	items, total, err := h.auditService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list audit logs", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}

	respondJSON(w, http.StatusOK, auditListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// @Summary Get an audit log entry
// @Description Single audit trail entry by ID
// @Tags Audit
// @Produce json
// @Param id path string true "Audit log ID"
// @Success 200 {object} domain.AuditLogDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit/{id} [get]
func (h *AuditHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid audit log id")
		return
	}

	entry, err := h.auditService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "audit log entry not found")
			return
		}
		h.logger.Error("failed to get audit log", zap.String("id", id.String()), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to get audit log")
		return
	}

	respondJSON(w, http.StatusOK, entry.ToDTO())
}
