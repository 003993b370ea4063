package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/services"
)

type planGateway interface {
	GeneratePlan(ctx context.Context, profile *models.UserProfile) (*models.FitnessPlan, error)
}

// GenerateHandler is the raw plan-generation gateway endpoint: a profile
// in the body, a plan or a structured error out. It persists nothing and
// never retries; resubmission is the caller's job.
type GenerateHandler struct {
	planService planGateway
}

func NewGenerateHandler(planService planGateway) *GenerateHandler {
	return &GenerateHandler{planService: planService}
}

func (h *GenerateHandler) GeneratePlan(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	plan, err := h.planService.GeneratePlan(c.Context(), &profile)
	if err != nil {
		return writeGenerationError(c, err)
	}

	return c.JSON(plan)
}

// writeGenerationError maps service error kinds to the gateway's HTTP
// contract. Only quota errors carry a retryAfter hint.
func writeGenerationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoAPIKey):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "No Gemini API key configured. Please add GEMINI_API_KEY to the environment.",
		})
	case errors.Is(err, services.ErrQuotaExhausted):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":      "API quota exceeded. The free tier limit has been reached. Please wait a minute and try again, or upgrade to a paid API plan.",
			"retryAfter": 60,
		})
	case errors.Is(err, services.ErrMalformedPlan):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "The model returned a malformed plan. Please try again.",
		})
	case errors.Is(err, services.ErrEmptyResponse):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "The model returned an empty response. Please try again.",
		})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fmt.Sprintf("Plan generation failed: %v", err),
		})
	}
}
