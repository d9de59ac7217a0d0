package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// AuditLogService handles audit logging operations
type AuditLogService struct {
	auditRepo *repository.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo *repository.AuditLogRepository, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// LogEntry represents the input for creating an audit log entry
type LogEntry struct {
	Action      string
	Category    domain.AuditCategory
	Description string
	Metadata    map[string]interface{}
}

// Log creates an audit log entry from context and request
func (s *AuditLogService) Log(ctx context.Context, r *http.Request, entry LogEntry) error {
	auditLog := &domain.AuditLog{
		Action:      entry.Action,
		Category:    entry.Category,
		Description: entry.Description,
		CreatedAt:   time.Now().UTC(),
	}

	// Extract user info from context
	if userCtx, ok := auth.FromContext(ctx); ok && userCtx != nil {
		auditLog.UserID = userCtx.UserID.String()
		auditLog.UserEmail = userCtx.Email
		auditLog.UserName = userCtx.DisplayName
	}

	if r != nil {
		auditLog.IPAddress = s.getClientIP(r)
	}

	// Serialize metadata (use "{}" for JSONB compatibility when no value)
	if entry.Metadata != nil {
		if metaJSON, err := json.Marshal(entry.Metadata); err == nil {
			auditLog.Metadata = string(metaJSON)
		} else {
			auditLog.Metadata = "{}"
		}
	} else {
		auditLog.Metadata = "{}"
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", entry.Action),
			zap.String("category", string(entry.Category)),
			zap.Error(err))
		return err
	}

	return nil
}

// AuditLogQueryParams represents query parameters for listing audit logs
type AuditLogQueryParams struct {
	UserID    string
	Action    string
	Category  *domain.AuditCategory
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	PageSize  int
}

// List retrieves audit logs with filters
func (s *AuditLogService) List(ctx context.Context, params AuditLogQueryParams) ([]domain.AuditLogDTO, int64, error) {
	filter := &repository.AuditLogFilter{
		UserID:    params.UserID,
		Action:    params.Action,
		Category:  params.Category,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
	}

	logs, total, err := s.auditRepo.List(ctx, filter, params.Page, params.PageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]domain.AuditLogDTO, 0, len(logs))
	for i := range logs {
		dtos = append(dtos, logs[i].ToDTO())
	}
	return dtos, total, nil
}

// GetByID retrieves a specific audit log entry
func (s *AuditLogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuditLog, error) {
	log, err := s.auditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return log, nil
}

// PruneOlderThan deletes audit entries created before the cutoff and
// returns how many were removed. The retention job is the only caller.
func (s *AuditLogService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("pruned expired audit log entries",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return deleted, nil
}

// getClientIP extracts the client IP from request headers
func (s *AuditLogService) getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxied requests)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	// Fall back to RemoteAddr (strip port)
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx > 0 {
		return addr[:idx]
	}
	return addr
}
