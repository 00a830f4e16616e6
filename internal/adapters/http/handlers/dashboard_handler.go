package handlers

import (
	"astrafin-backoffice/internal/core/services"
	"astrafin-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles validation dashboard endpoints
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview returns per-resource status counts and recent validation activity
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", overview)
}
