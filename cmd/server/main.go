package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"coopcredit/internal/adapters/http/middleware"
	"coopcredit/internal/adapters/http/routes"
	"coopcredit/internal/adapters/persistence/models"
	"coopcredit/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "coopcredit/docs" // Swagger docs
)

// @title CoopCredit API
// @version 1.0
// @description Credit evaluation and decision workflow for cooperative affiliates.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@coopcredit.example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed development data
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CoopCredit API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	reminderService := routes.Setup(app, db, cfg)

	// Scheduled jobs (pending reminders, token cleanup)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduled jobs: %v", err)
	}
	defer reminderService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
