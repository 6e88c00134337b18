package handlers

import (
	"coopcredit/internal/core/services"
	"coopcredit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles analyst dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles dashboard statistics
// @Summary Dashboard statistics
// @Description Portfolio counters and approval rate
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}
