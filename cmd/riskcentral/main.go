package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"coopcredit/internal/pkg/riskscore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Standalone mock of the external risk central. Serves the same
// deterministic scores as the in-process adapter so the main API can be
// exercised end to end with RISK_CENTRAL_ADAPTER=http.

type evaluationRequest struct {
	DocumentNumber string  `json:"document_number"`
	Amount         float64 `json:"amount"`
	TermMonths     int     `json:"term_months"`
}

type evaluationResponse struct {
	DocumentNumber string `json:"document_number"`
	Score          int    `json:"score"`
	RiskLevel      string `json:"risk_level"`
	Details        string `json:"details"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3100"
	}

	app := fiber.New(fiber.Config{
		AppName: "CoopCredit Risk Central Mock v1.0",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/risk-evaluation", func(c *fiber.Ctx) error {
		var req evaluationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.DocumentNumber == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Document number is required",
			})
		}

		result := riskscore.Evaluate(req.DocumentNumber)
		return c.JSON(evaluationResponse{
			DocumentNumber: req.DocumentNumber,
			Score:          result.Score,
			RiskLevel:      result.Level,
			Details:        result.Details,
		})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down risk central...")
		_ = app.Shutdown()
	}()

	log.Printf("🚀 Risk central mock starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Failed to start risk central: %v", err)
	}
}
