package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minima-hotel/backoffice-api/docs"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/database"
	"github.com/minima-hotel/backoffice-api/internal/http/handler"
	"github.com/minima-hotel/backoffice-api/internal/http/middleware"
	"github.com/minima-hotel/backoffice-api/internal/http/router"
	"github.com/minima-hotel/backoffice-api/internal/jobs"
	"github.com/minima-hotel/backoffice-api/internal/logger"
	"github.com/minima-hotel/backoffice-api/internal/mailer"
	"github.com/minima-hotel/backoffice-api/internal/repository"
	"github.com/minima-hotel/backoffice-api/internal/service"
	"github.com/minima-hotel/backoffice-api/internal/storage"
	"go.uber.org/zap"
)

// @title Minima Hotel Back Office API
// @version 1.0
// @description Reporting and analytics API for hotel occupancy, revenue and scheduled reports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@minimahotel.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "backoffice-staging.minimahotel.example"
	case "production":
		docs.SwaggerInfo.Host = "backoffice.minimahotel.example"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage for report archiving
	archiveStorage, err := storage.NewArchive(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	posRepo := repository.NewPOSRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	scheduledReportRepo := repository.NewScheduledReportRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	snapshotService := service.NewSnapshotService(roomRepo, bookingRepo, posRepo, guestRepo, log)
	analyticsService := service.NewAnalyticsService(
		snapshotService,
		cfg.Analytics.CacheEnabled,
		cfg.Analytics.CacheTTLDuration(),
		log,
	)
	goalService := service.NewGoalService(goalRepo, snapshotService, log)
	scheduleService := service.NewScheduleService(scheduledReportRepo, log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)

	mailClient := mailer.NewClient(&cfg.Mail, log)
	reportService := service.NewReportService(
		snapshotService,
		scheduleService,
		mailClient,
		archiveStorage,
		&cfg.App,
		&cfg.Mail,
		&cfg.Reports,
		log,
	)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(analyticsService, log)
	occupancyHandler := handler.NewOccupancyHandler(analyticsService, log)
	revenueHandler := handler.NewRevenueHandler(analyticsService, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)
	goalHandler := handler.NewGoalHandler(goalService, log)
	reportHandler := handler.NewReportHandler(scheduleService, reportService, log)
	auditHandler := handler.NewAuditHandler(auditLogService, log)
	adminHandler := handler.NewAdminHandler(analyticsService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		dashboardHandler,
		occupancyHandler,
		revenueHandler,
		analyticsHandler,
		goalHandler,
		reportHandler,
		auditHandler,
		adminHandler,
	)

	// Initialize and start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)

	if cfg.Reports.DispatchEnabled {
		if err := jobs.RegisterReportDispatchJob(
			scheduler,
			reportService,
			log,
			cfg.Reports.DispatchIntervalDuration(),
			jobs.DefaultDispatchTimeout,
		); err != nil {
			log.Error("Failed to register report dispatch job", zap.Error(err))
		}
	} else {
		log.Info("Report dispatch disabled",
			zap.Bool("dispatch_enabled", cfg.Reports.DispatchEnabled),
		)
	}

	if err := jobs.RegisterAuditRetentionJob(scheduler, auditLogService, log, cfg.Audit.RetentionDays); err != nil {
		log.Error("Failed to register audit retention job", zap.Error(err))
	}

	if names := scheduler.GetJobNames(); len(names) > 0 {
		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", names))
	} else {
		scheduler = nil
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
