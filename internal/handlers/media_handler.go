package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/RB-QX-byte/Fitness/internal/services"
)

type imageGateway interface {
	Generate(ctx context.Context, subject, category string) *services.ImageResult
}

type speechGateway interface {
	Synthesize(ctx context.Context, text string) (*services.SpeechResult, error)
}

// MediaHandler serves the two on-demand media gateways. Neither persists
// anything; provider-side unavailability is never a non-2xx image response
// and always leaves the caller a usable fallback.
type MediaHandler struct {
	images imageGateway
	speech speechGateway
}

func NewMediaHandler(images imageGateway, speech speechGateway) *MediaHandler {
	return &MediaHandler{images: images, speech: speech}
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

func (h *MediaHandler) GenerateImage(c *fiber.Ctx) error {
	var req imageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No prompt provided"})
	}

	result := h.images.Generate(c.Context(), req.Prompt, req.Type)
	if result.Placeholder {
		return c.JSON(fiber.Map{
			"imageUrl":    nil,
			"placeholder": true,
			"message":     result.Message,
		})
	}
	return c.JSON(fiber.Map{"imageUrl": result.ImageURL})
}

type voiceRequest struct {
	Text    string `json:"text"`
	Section string `json:"section"`
}

func (h *MediaHandler) SynthesizeVoice(c *fiber.Ctx) error {
	var req voiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No text provided"})
	}

	result, err := h.speech.Synthesize(c.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrNoSpeechProvider) {
			// Hand the text back so the client can run on-device speech.
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":    "No TTS provider available",
				"fallback": "browser",
				"text":     req.Text,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Voice generation failed"})
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	return c.Send(result.Audio)
}
