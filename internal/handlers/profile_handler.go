package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/RB-QX-byte/Fitness/internal/middleware"
	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/repository"
)

type sessionWiper interface {
	ClearSession(ctx context.Context, sessionID string) error
}

// ProfileHandler exposes the session's single profile slot. A profile is
// replaced wholesale on every save; there is no partial update.
type ProfileHandler struct {
	profiles repository.ProfileStore
	wiper    sessionWiper
}

func NewProfileHandler(profiles repository.ProfileStore, wiper sessionWiper) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, wiper: wiper}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, ok, err := h.profiles.Load(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Printf("load profile: %v", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No profile saved"})
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !profile.Complete() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Profile is incomplete"})
	}

	if err := h.profiles.Save(c.Context(), middleware.SessionID(c), &profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile"})
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) ClearProfile(c *fiber.Ctx) error {
	if err := h.profiles.Clear(c.Context(), middleware.SessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear profile"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OnboardingStatus backs the client's "has completed onboarding" check:
// true iff a profile record exists for the session.
func (h *ProfileHandler) OnboardingStatus(c *fiber.Ctx) error {
	_, ok, err := h.profiles.Load(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Printf("load profile: %v", err)
	}
	return c.JSON(fiber.Map{"onboarded": ok})
}

// ClearSession wipes every record for the session - profile, plan and any
// in-flight generation.
func (h *ProfileHandler) ClearSession(c *fiber.Ctx) error {
	if err := h.wiper.ClearSession(c.Context(), middleware.SessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear session"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
