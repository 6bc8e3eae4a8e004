package handlers

import (
	"github.com/claimlens/claimlens-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CacheHandler struct {
	CacheService *services.CacheService
	Service      *services.VerificationService
}

func NewCacheHandler(cache *services.CacheService, service *services.VerificationService) *CacheHandler {
	return &CacheHandler{
		CacheService: cache,
		Service:      service,
	}
}

// GetCacheStats returns the verdict cache size and hit/miss counters
func (h *CacheHandler) GetCacheStats(c *fiber.Ctx) error {
	metrics := h.Service.GetServiceMetrics()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"size":   h.CacheService.Size(),
			"ttl":    h.CacheService.TTL().String(),
			"hits":   metrics.GetCounter("cache_hit"),
			"misses": metrics.GetCounter("cache_miss"),
		},
	})
}

// ClearCache drops all cached verdicts
func (h *CacheHandler) ClearCache(c *fiber.Ctx) error {
	h.CacheService.Clear()
	logrus.WithField("component", "CacheHandler").Info("Verdict cache cleared")
	return c.JSON(fiber.Map{
		"success": true,
	})
}
