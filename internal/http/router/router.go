package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/config"
	"github.com/taxdesk/backoffice-api/internal/database"
	"github.com/taxdesk/backoffice-api/internal/http/handler"
	"github.com/taxdesk/backoffice-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/taxdesk/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	auditMiddleware    *middleware.AuditMiddleware
	authHandler        *handler.AuthHandler
	clientHandler      *handler.ClientHandler
	agentHandler       *handler.AgentHandler
	taxReturnHandler   *handler.TaxReturnHandler
	documentHandler    *handler.DocumentHandler
	paymentHandler     *handler.PaymentHandler
	appointmentHandler *handler.AppointmentHandler
	serviceHandler     *handler.ServiceHandler
	staffHandler       *handler.StaffHandler
	activityHandler    *handler.ActivityHandler
	dashboardHandler   *handler.DashboardHandler
	reportsHandler     *handler.ReportsHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	agentHandler *handler.AgentHandler,
	taxReturnHandler *handler.TaxReturnHandler,
	documentHandler *handler.DocumentHandler,
	paymentHandler *handler.PaymentHandler,
	appointmentHandler *handler.AppointmentHandler,
	serviceHandler *handler.ServiceHandler,
	staffHandler *handler.StaffHandler,
	activityHandler *handler.ActivityHandler,
	dashboardHandler *handler.DashboardHandler,
	reportsHandler *handler.ReportsHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		auditMiddleware:    auditMiddleware,
		authHandler:        authHandler,
		clientHandler:      clientHandler,
		agentHandler:       agentHandler,
		taxReturnHandler:   taxReturnHandler,
		documentHandler:    documentHandler,
		paymentHandler:     paymentHandler,
		appointmentHandler: appointmentHandler,
		serviceHandler:     serviceHandler,
		staffHandler:       staffHandler,
		activityHandler:    activityHandler,
		dashboardHandler:   dashboardHandler,
		reportsHandler:     reportsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

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

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required); login gets its own tight budget
		r.With(rt.rateLimiter.LimitLogin).Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.LimitByUser)
			r.Use(rt.auditMiddleware.Audit) // Audit all modifications

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.Post("/", rt.clientHandler.Create)
				r.Get("/{id}", rt.clientHandler.Get)
				r.Get("/{id}/detail", rt.clientHandler.Detail)
				r.Put("/{id}", rt.clientHandler.Update)
				r.Delete("/{id}", rt.clientHandler.Delete)
			})

			// Agents
			r.Route("/agents", func(r chi.Router) {
				r.Get("/", rt.agentHandler.List)
				r.Post("/", rt.agentHandler.Create)
				r.Get("/{id}", rt.agentHandler.Get)
				r.Get("/{id}/detail", rt.agentHandler.Detail)
				r.Put("/{id}", rt.agentHandler.Update)
				r.Delete("/{id}", rt.agentHandler.Delete)
			})

			// Tax returns
			r.Route("/tax-returns", func(r chi.Router) {
				r.Get("/", rt.taxReturnHandler.List)
				r.Post("/", rt.taxReturnHandler.Create)
				r.Get("/{id}", rt.taxReturnHandler.Get)
				r.Get("/{id}/detail", rt.taxReturnHandler.Detail)
				r.Put("/{id}", rt.taxReturnHandler.Update)
				r.Delete("/{id}", rt.taxReturnHandler.Delete)
			})

			// Documents
			r.Route("/documents", func(r chi.Router) {
				r.Get("/", rt.documentHandler.List)
				r.Post("/", rt.documentHandler.Create)
				r.Post("/{id}/upload", rt.documentHandler.Upload)
				r.Get("/{id}", rt.documentHandler.Get)
				r.Get("/{id}/detail", rt.documentHandler.Detail)
				r.Get("/{id}/download", rt.documentHandler.Download)
				r.Put("/{id}", rt.documentHandler.Update)
				r.Post("/{id}/verify", rt.documentHandler.Verify)
				r.Delete("/{id}", rt.documentHandler.Delete)
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", rt.paymentHandler.List)
				r.Post("/", rt.paymentHandler.Create)
				r.Get("/{id}", rt.paymentHandler.Get)
				r.Get("/{id}/detail", rt.paymentHandler.Detail)
				r.Put("/{id}", rt.paymentHandler.Update)
				r.Delete("/{id}", rt.paymentHandler.Delete)
			})

			// Appointments
			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", rt.appointmentHandler.List)
				r.Post("/", rt.appointmentHandler.Create)
				r.Get("/{id}", rt.appointmentHandler.Get)
				r.Get("/{id}/detail", rt.appointmentHandler.Detail)
				r.Put("/{id}", rt.appointmentHandler.Update)
				r.Delete("/{id}", rt.appointmentHandler.Delete)
			})

			// Service catalog
			r.Route("/services", func(r chi.Router) {
				r.Get("/", rt.serviceHandler.List)
				r.Post("/", rt.serviceHandler.Create)
				r.Get("/{id}", rt.serviceHandler.Get)
				r.Get("/{id}/detail", rt.serviceHandler.Detail)
				r.Put("/{id}", rt.serviceHandler.Update)
				r.Delete("/{id}", rt.serviceHandler.Delete)
			})

			// Staff (admin only)
			r.Route("/staff", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.staffHandler.List)
				r.Post("/", rt.staffHandler.Create)
				r.Get("/{id}", rt.staffHandler.Get)
				r.Get("/{id}/detail", rt.staffHandler.Detail)
				r.Put("/{id}", rt.staffHandler.Update)
				r.Delete("/{id}", rt.staffHandler.Delete)
			})

			// Session introspection and self-service account settings
			r.Get("/auth/me", rt.authHandler.Me)
			r.Put("/auth/me", rt.authHandler.UpdateMe)
			r.Put("/auth/me/password", rt.authHandler.ChangePassword)

			// Activity log (read-only, written by the audit middleware)
			r.Get("/activity", rt.activityHandler.List)
			r.Get("/activity/{id}", rt.activityHandler.Get)

			// Dashboard & reports
			r.Get("/dashboard/stats", rt.dashboardHandler.Stats)
			r.Get("/reports", rt.reportsHandler.Overview)
		})
	})

	return r
}
