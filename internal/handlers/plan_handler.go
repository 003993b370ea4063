package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/RB-QX-byte/Fitness/internal/middleware"
	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/prompts"
	"github.com/RB-QX-byte/Fitness/internal/repository"
	"github.com/RB-QX-byte/Fitness/internal/services"
)

type dashboardService interface {
	Load(ctx context.Context, sessionID string) *services.DashboardState
	Generate(ctx context.Context, sessionID string) (*models.StoredPlan, error)
	Exercise(ctx context.Context, sessionID, id, name string) (*models.Exercise, error)
	Meal(ctx context.Context, sessionID, id, name string) (*models.Meal, error)
	VoiceScript(ctx context.Context, sessionID, section string) string
}

// PlanHandler serves the dashboard: persisted plan state, guarded
// regeneration, detail lookups and voice-script derivation.
type PlanHandler struct {
	dashboard dashboardService
	plans     repository.PlanStore
}

func NewPlanHandler(dashboard dashboardService, plans repository.PlanStore) *PlanHandler {
	return &PlanHandler{dashboard: dashboard, plans: plans}
}

func (h *PlanHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Load(c.Context(), middleware.SessionID(c)))
}

// GeneratePlan triggers one guarded generation and persists the result.
// A failure leaves any previously stored plan untouched.
func (h *PlanHandler) GeneratePlan(c *fiber.Ctx) error {
	stored, err := h.dashboard.Generate(c.Context(), middleware.SessionID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGenerationInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A plan generation is already in progress"})
		case errors.Is(err, services.ErrStaleGeneration):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This generation was superseded and its result discarded"})
		default:
			return writeGenerationError(c, err)
		}
	}
	return c.JSON(stored)
}

func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	stored, ok, err := h.plans.Load(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Printf("load plan: %v", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No plan saved"})
	}
	return c.JSON(stored)
}

func (h *PlanHandler) ClearPlan(c *fiber.Ctx) error {
	if err := h.plans.Clear(c.Context(), middleware.SessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear plan"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlanHandler) GetExercise(c *fiber.Ctx) error {
	exercise, err := h.dashboard.Exercise(c.Context(), middleware.SessionID(c), c.Params("id"), "")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}
	return c.JSON(exercise)
}

// FindExercise is the name-match fallback for clients that predate stable
// ids.
func (h *PlanHandler) FindExercise(c *fiber.Ctx) error {
	exercise, err := h.dashboard.Exercise(c.Context(), middleware.SessionID(c), "", c.Query("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}
	return c.JSON(exercise)
}

func (h *PlanHandler) GetMeal(c *fiber.Ctx) error {
	meal, err := h.dashboard.Meal(c.Context(), middleware.SessionID(c), c.Params("id"), "")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meal not found"})
	}
	return c.JSON(meal)
}

func (h *PlanHandler) FindMeal(c *fiber.Ctx) error {
	meal, err := h.dashboard.Meal(c.Context(), middleware.SessionID(c), "", c.Query("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meal not found"})
	}
	return c.JSON(meal)
}

// VoiceScript returns the narration text for a plan section; synthesis is a
// separate call to the voice gateway.
func (h *PlanHandler) VoiceScript(c *fiber.Ctx) error {
	section := c.Query("section", prompts.SectionWorkout)
	text := h.dashboard.VoiceScript(c.Context(), middleware.SessionID(c), section)
	return c.JSON(fiber.Map{"section": section, "text": text})
}
