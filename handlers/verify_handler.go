package handlers

import (
	"github.com/claimlens/claimlens-backend/services"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type VerifyHandler struct {
	Service *services.VerificationService
}

func NewVerifyHandler(service *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{Service: service}
}

// VerifyClaim handles POST /verify: one claim in, one verdict out
func (h *VerifyHandler) VerifyClaim(c *fiber.Ctx) error {
	type Request struct {
		Claim string `json:"claim"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	requestID := uuid.New().String()
	logrus.WithFields(logrus.Fields{
		"component":  "VerifyHandler",
		"request_id": requestID,
	}).Info("Verifying claim")

	result, err := h.Service.VerifyClaim(c.Context(), req.Claim)
	if err != nil {
		if shared.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// VerifyPage handles POST /verify-page: splits the text into candidate
// sentences and verifies each one
func (h *VerifyHandler) VerifyPage(c *fiber.Ctx) error {
	type Request struct {
		Text string `json:"text"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	requestID := uuid.New().String()
	logrus.WithFields(logrus.Fields{
		"component":  "VerifyHandler",
		"request_id": requestID,
		"text_len":   len(req.Text),
	}).Info("Verifying page")

	// Candidate fragments are never empty, so a validation error cannot
	// surface here; any failure is a server-side one.
	results, err := h.Service.VerifyPage(c.Context(), req.Text)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
