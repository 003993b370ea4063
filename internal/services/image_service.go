package services

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ImageGenerator is the slice of the Gemini client the image gateway needs.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*InlineImage, error)
	Configured() bool
}

// ImageResult is the gateway's answer. Placeholder results are not
// failures: callers must distinguish "no image available" from "request
// failed", and this gateway only ever produces the former.
type ImageResult struct {
	ImageURL    string
	Placeholder bool
	Message     string
}

const (
	CategoryExercise = "exercise"
	CategoryMeal     = "meal"
)

// ImageService turns a subject name into an AI-generated illustration.
// Every provider-side problem is downgraded to a placeholder result.
type ImageService struct {
	generator ImageGenerator
}

func NewImageService(generator ImageGenerator) *ImageService {
	return &ImageService{generator: generator}
}

// Generate requests an image for the named subject. Never returns an error;
// the worst outcome is a placeholder with an explanatory message.
func (s *ImageService) Generate(ctx context.Context, subject, category string) *ImageResult {
	if !s.generator.Configured() {
		return &ImageResult{
			Placeholder: true,
			Message:     "No GEMINI_IMAGE_API_KEY configured. Add it to the environment for image generation.",
		}
	}

	image, err := s.generator.GenerateImage(ctx, enhanceImagePrompt(subject, category))
	if err != nil {
		log.Printf("image generation error: %v", err)
		if errors.Is(err, ErrQuotaExhausted) {
			return &ImageResult{
				Placeholder: true,
				Message:     "API quota exceeded. Please wait a moment and try again.",
			}
		}
		return &ImageResult{
			Placeholder: true,
			Message:     "Image generation temporarily unavailable.",
		}
	}

	if image == nil {
		return &ImageResult{
			Placeholder: true,
			Message:     "Image generation is not available for this request.",
		}
	}

	return &ImageResult{
		ImageURL: fmt.Sprintf("data:%s;base64,%s", image.MimeType, image.Data),
	}
}

// enhanceImagePrompt wraps the bare subject in category-specific art
// direction. Anything that is not an exercise gets the food treatment.
func enhanceImagePrompt(subject, category string) string {
	if category == CategoryExercise {
		return fmt.Sprintf(
			"Generate a professional fitness photograph of someone performing %s exercise in a modern gym setting. Dynamic pose, athletic lighting, high quality, realistic.",
			subject,
		)
	}
	return fmt.Sprintf(
		"Generate a beautiful food photography shot of %s. Professional lighting, appetizing presentation, top-down or 45-degree angle, restaurant quality, high resolution.",
		subject,
	)
}
