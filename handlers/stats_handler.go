package handlers

import (
	"github.com/claimlens/claimlens-backend/services"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Service *services.VerificationService
}

func NewStatsHandler(service *services.VerificationService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// GetServiceStats returns a snapshot of the verification service metrics
func (h *StatsHandler) GetServiceStats(c *fiber.Ctx) error {
	snapshot := h.Service.GetServiceMetrics().GetSnapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    snapshot,
	})
}
