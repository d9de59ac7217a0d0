package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/database"
	"github.com/minima-hotel/backoffice-api/internal/http/handler"
	"github.com/minima-hotel/backoffice-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/minima-hotel/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	auditMiddleware  *middleware.AuditMiddleware
	dashboardHandler *handler.DashboardHandler
	occupancyHandler *handler.OccupancyHandler
	revenueHandler   *handler.RevenueHandler
	analyticsHandler *handler.AnalyticsHandler
	goalHandler      *handler.GoalHandler
	reportHandler    *handler.ReportHandler
	auditHandler     *handler.AuditHandler
	adminHandler     *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	dashboardHandler *handler.DashboardHandler,
	occupancyHandler *handler.OccupancyHandler,
	revenueHandler *handler.RevenueHandler,
	analyticsHandler *handler.AnalyticsHandler,
	goalHandler *handler.GoalHandler,
	reportHandler *handler.ReportHandler,
	auditHandler *handler.AuditHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		auditMiddleware:  auditMiddleware,
		dashboardHandler: dashboardHandler,
		occupancyHandler: occupancyHandler,
		revenueHandler:   revenueHandler,
		analyticsHandler: analyticsHandler,
		goalHandler:      goalHandler,
		reportHandler:    reportHandler,
		auditHandler:     auditHandler,
		adminHandler:     adminHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation (public, so IP budget only)
	if rt.cfg.Server.EnableSwagger {
		r.Group(func(r chi.Router) {
			r.Use(rt.rateLimiter.LimitByIP)
			r.Get("/swagger/*", httpSwagger.Handler(
				httpSwagger.URL("/swagger/doc.json"),
			))
		})
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit) // Budget tier depends on who is calling
			r.Use(rt.auditMiddleware.Audit) // Audit all modifications

			// Dashboard
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/kpis", rt.dashboardHandler.GetKPIs)
				r.Get("/room-types", rt.dashboardHandler.GetRoomTypes)
				r.Get("/bookings", rt.dashboardHandler.GetRecentBookings)
				r.Get("/booking-stats", rt.dashboardHandler.GetBookingStats)
			})

			// Occupancy
			r.Route("/occupancy", func(r chi.Router) {
				r.Get("/daily", rt.occupancyHandler.GetDaily)
				r.Get("/monthly", rt.occupancyHandler.GetMonthly)
			})

			// Revenue
			r.Route("/revenue", func(r chi.Router) {
				r.Get("/monthly", rt.revenueHandler.GetMonthly)
				r.Get("/summary", rt.revenueHandler.GetSummary)
				r.Get("/pos-categories", rt.revenueHandler.GetPOSCategories)
				r.Get("/payment-methods", rt.revenueHandler.GetPaymentMethods)
				r.Get("/top-products", rt.revenueHandler.GetTopProducts)
			})

			// Analytics
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/comparison", rt.analyticsHandler.GetComparison)
				r.Get("/alerts", rt.analyticsHandler.GetAlerts)
				r.Get("/forecast", rt.analyticsHandler.GetForecast)
				r.Get("/guests", rt.analyticsHandler.GetGuests)
				r.Get("/rooms", rt.analyticsHandler.GetRoomPerformance)
				r.Get("/peaks", rt.analyticsHandler.GetPeaks)
			})

			// Goals
			r.Route("/goals", func(r chi.Router) {
				r.Get("/", rt.goalHandler.List)
				r.Post("/", rt.goalHandler.Create)
				r.Get("/progress", rt.goalHandler.Progress)
				r.Delete("/{id}", rt.goalHandler.Delete)
			})

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", rt.reportHandler.ListSchedules)
					r.Post("/", rt.reportHandler.CreateSchedule)
					r.Put("/{id}", rt.reportHandler.UpdateSchedule)
					r.Delete("/{id}", rt.reportHandler.DeleteSchedule)
				})
				r.Post("/send", rt.reportHandler.SendNow)
			})

			// Audit logs
			r.Route("/audit", func(r chi.Router) {
				r.Get("/", rt.auditHandler.List)
				r.Get("/{id}", rt.auditHandler.GetByID)
			})

			// Admin (cache refresh requires admin role or API key)
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Post("/admin/refresh", rt.adminHandler.Refresh)
			})
		})
	})

	return r
}
