package routes

import (
	"time"

	"coopcredit/internal/adapters/http/handlers"
	"coopcredit/internal/adapters/http/middleware"
	"coopcredit/internal/adapters/metrics"
	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/adapters/riskcentral"
	"coopcredit/internal/config"
	"coopcredit/internal/core/services"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes and wires repositories, services and
// handlers together
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.ReminderService {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	affiliateRepo := repositories.NewAffiliateRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	// Metrics
	registry := prometheus.NewRegistry()
	sink := metrics.NewPrometheus(registry)

	// Risk central adapter
	var riskCentralPort services.RiskCentral
	if cfg.RiskCentral.Adapter == "http" {
		riskCentralPort = riskcentral.NewClient(
			cfg.RiskCentral.URL,
			time.Duration(cfg.RiskCentral.TimeoutSeconds)*time.Second,
		)
	} else {
		riskCentralPort = riskcentral.NewLocal()
	}

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, sink, cfg)
	affiliateService := services.NewAffiliateService(affiliateRepo, sink)
	applicationService := services.NewApplicationService(
		applicationRepo,
		affiliateRepo,
		riskCentralPort,
		sink,
		services.EvaluationMode(cfg.Evaluation.Mode),
	)
	dashboardService := services.NewDashboardService(applicationRepo, affiliateRepo)
	reminderService := services.NewReminderService(applicationRepo, refreshTokenRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService, applicationService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Affiliate routes
	affiliateRoutes := apiV1.Group("/affiliates")
	affiliateRoutes.Use(middleware.AuthMiddleware(cfg))
	affiliateRoutes.Post("/", middleware.AnalystOrAdmin(), affiliateHandler.Register)
	affiliateRoutes.Get("/", middleware.AnalystOrAdmin(), affiliateHandler.List)
	affiliateRoutes.Get("/:documentNumber", middleware.SelfOrStaff("documentNumber"), affiliateHandler.Get)
	affiliateRoutes.Put("/:documentNumber", middleware.AdminOnly(), affiliateHandler.Update)
	affiliateRoutes.Patch("/:documentNumber/activate", middleware.AdminOnly(), affiliateHandler.Activate)
	affiliateRoutes.Patch("/:documentNumber/deactivate", middleware.AdminOnly(), affiliateHandler.Deactivate)
	affiliateRoutes.Get("/:documentNumber/applications", middleware.SelfOrStaff("documentNumber"), affiliateHandler.ListApplications)

	// Application routes
	applicationRoutes := apiV1.Group("/applications")
	applicationRoutes.Use(middleware.AuthMiddleware(cfg))
	applicationRoutes.Post("/", applicationHandler.Create)
	applicationRoutes.Get("/", middleware.AnalystOrAdmin(), applicationHandler.List)
	applicationRoutes.Get("/pending", middleware.AnalystOrAdmin(), applicationHandler.ListPending)
	applicationRoutes.Get("/:id", applicationHandler.Get)

	// Workflow endpoints depend on the configured evaluation mode
	if applicationService.Mode() == services.ModeAuto {
		applicationRoutes.Post("/:id/evaluate", middleware.AnalystOrAdmin(), applicationHandler.Evaluate)
	} else {
		applicationRoutes.Post("/:id/evaluate-risk", middleware.AnalystOrAdmin(), applicationHandler.EvaluateRisk)
		applicationRoutes.Post("/:id/decide", middleware.AnalystOrAdmin(), applicationHandler.Decide)
	}

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg), middleware.AnalystOrAdmin())
	dashboardRoutes.Get("/stats", dashboardHandler.Stats)

	return reminderService
}
