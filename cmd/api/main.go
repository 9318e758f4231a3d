package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taxdesk/backoffice-api/docs"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/config"
	"github.com/taxdesk/backoffice-api/internal/database"
	"github.com/taxdesk/backoffice-api/internal/http/handler"
	"github.com/taxdesk/backoffice-api/internal/http/middleware"
	"github.com/taxdesk/backoffice-api/internal/http/router"
	"github.com/taxdesk/backoffice-api/internal/jobs"
	"github.com/taxdesk/backoffice-api/internal/logger"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/storage"
	"go.uber.org/zap"
)

// @title TaxDesk Backoffice API
// @version 1.0
// @description Administrative back-office API for tax preparation: clients, agents, tax returns, documents, payments, appointments and reporting
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@taxdesk.io

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
		docs.SwaggerInfo.Host = "backoffice-staging.taxdesk.io"
	case "production":
		docs.SwaggerInfo.Host = "api.taxdesk.io"
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

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	taxReturnRepo := repository.NewTaxReturnRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDuration())
	clientService := service.NewClientService(clientRepo, agentRepo, log)
	agentService := service.NewAgentService(agentRepo, clientRepo, taxReturnRepo, log)
	taxReturnService := service.NewTaxReturnService(taxReturnRepo, clientRepo, log)
	documentService := service.NewDocumentService(documentRepo, clientRepo, fileStorage, log)
	paymentService := service.NewPaymentService(paymentRepo, clientRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, clientRepo, agentRepo, log)
	catalogService := service.NewServiceCatalogService(serviceRepo, log)
	staffService := service.NewStaffService(staffRepo, log)
	authService := service.NewAuthService(staffRepo, tokens, log)
	activityLogService := service.NewActivityLogService(activityLogRepo, log)
	dashboardService := service.NewDashboardService(clientRepo, agentRepo, taxReturnRepo, documentRepo, paymentRepo, appointmentRepo, log)
	reportsService := service.NewReportsService(taxReturnRepo, paymentRepo, agentRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokens, cfg.ApiKey.Value, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(activityLogService, nil, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	agentHandler := handler.NewAgentHandler(agentService, log)
	taxReturnHandler := handler.NewTaxReturnHandler(taxReturnService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, log)
	serviceHandler := handler.NewServiceHandler(catalogService, log)
	staffHandler := handler.NewStaffHandler(staffService, log)
	activityHandler := handler.NewActivityHandler(activityLogService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	reportsHandler := handler.NewReportsHandler(reportsService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		authHandler,
		clientHandler,
		agentHandler,
		taxReturnHandler,
		documentHandler,
		paymentHandler,
		appointmentHandler,
		serviceHandler,
		staffHandler,
		activityHandler,
		dashboardHandler,
		reportsHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.AgentStatsEnabled {
		scheduler = jobs.NewScheduler(log)
		statsJob := jobs.NewAgentStatsJob(agentService, log)
		if err := scheduler.AddJob("agent-stats-recompute", cfg.Jobs.AgentStatsSchedule, statsJob.Run); err != nil {
			log.Error("Failed to register agent stats job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with agent stats job",
				zap.String("cron_expr", cfg.Jobs.AgentStatsSchedule),
			)
			// Recompute once at startup so stats are fresh before the
			// first scheduled run.
			go statsJob.Run()
		}
	} else {
		log.Info("Agent stats job disabled")
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
