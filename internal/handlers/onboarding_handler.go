package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/RB-QX-byte/Fitness/internal/middleware"
	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/services"
)

type onboardingFlow interface {
	Start(sessionID string) *services.FlowState
	Current(sessionID string) (*services.FlowState, error)
	UpdateFields(sessionID string, partial *models.UserProfile) (*services.FlowState, error)
	Next(ctx context.Context, sessionID string) (*services.FlowState, error)
	Back(sessionID string) (*services.FlowState, error)
	Abandon(sessionID string)
}

// OnboardingHandler drives the wizard. Flow state lives server-side in
// memory; nothing is persisted until the final Next succeeds.
type OnboardingHandler struct {
	flow onboardingFlow
}

func NewOnboardingHandler(flow onboardingFlow) *OnboardingHandler {
	return &OnboardingHandler{flow: flow}
}

func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	return c.JSON(h.flow.Start(middleware.SessionID(c)))
}

func (h *OnboardingHandler) Current(c *fiber.Ctx) error {
	state, err := h.flow.Current(middleware.SessionID(c))
	if err != nil {
		return writeFlowError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) UpdateFields(c *fiber.Ctx) error {
	var partial models.UserProfile
	if err := c.BodyParser(&partial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := h.flow.UpdateFields(middleware.SessionID(c), &partial)
	if err != nil {
		return writeFlowError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) Next(c *fiber.Ctx) error {
	state, err := h.flow.Next(c.Context(), middleware.SessionID(c))
	if err != nil {
		return writeFlowError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) Back(c *fiber.Ctx) error {
	state, err := h.flow.Back(middleware.SessionID(c))
	if err != nil {
		return writeFlowError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) Abandon(c *fiber.Ctx) error {
	h.flow.Abandon(middleware.SessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func writeFlowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoFlow):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No onboarding in progress"})
	case errors.Is(err, services.ErrStepIncomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Complete the current step before continuing"})
	case errors.Is(err, services.ErrAtFirstStep):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Already at the first step"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Onboarding failed"})
	}
}
