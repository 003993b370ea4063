package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/prompts"
)

// TextGenerator is the slice of the Gemini client the plan gateway needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PlanService is the plan-generation gateway: profile in, validated
// FitnessPlan out. It performs no retries and persists nothing.
type PlanService struct {
	generator TextGenerator
}

func NewPlanService(generator TextGenerator) *PlanService {
	return &PlanService{generator: generator}
}

// GeneratePlan builds the prompt, calls the model and decodes the answer.
// Transport and quota failures pass through as their service error kinds;
// undecodable output surfaces as ErrMalformedPlan.
func (s *PlanService) GeneratePlan(ctx context.Context, profile *models.UserProfile) (*models.FitnessPlan, error) {
	prompt := prompts.SystemPrompt + "\n\n" + prompts.BuildUserPrompt(profile)

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := DecodePlan([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	return plan, nil
}

// rawPlan mirrors the JSON shape the model is instructed to emit, before
// ids are assigned.
type rawPlan struct {
	UserSummary     string `json:"user_summary"`
	DailyMotivation string `json:"daily_motivation"`
	WorkoutPlan     struct {
		Title     string `json:"title"`
		Duration  string `json:"duration"`
		Exercises []struct {
			Name string `json:"name"`
			Sets int    `json:"sets"`
			Reps string `json:"reps"`
			Rest string `json:"rest"`
			Tip  string `json:"tip"`
		} `json:"exercises"`
	} `json:"workout_plan"`
	DietPlan struct {
		TotalCalories int `json:"total_calories"`
		Meals         []struct {
			Label    string        `json:"label"`
			Name     string        `json:"name"`
			Calories *int          `json:"calories"`
			Macros   models.Macros `json:"macros"`
		} `json:"meals"`
	} `json:"diet_plan"`
}

// DecodePlan parses provider text into a FitnessPlan, validating the shape
// and assigning a stable id to every exercise and meal. Markdown code
// fences around the JSON are tolerated.
func DecodePlan(text []byte) (*models.FitnessPlan, error) {
	cleaned := strings.ReplaceAll(string(text), "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var raw rawPlan
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("parse plan json: %w", err)
	}

	if raw.WorkoutPlan.Title == "" {
		return nil, fmt.Errorf("workout plan has no title")
	}
	if len(raw.WorkoutPlan.Exercises) == 0 {
		return nil, fmt.Errorf("workout plan has no exercises")
	}
	if len(raw.DietPlan.Meals) == 0 {
		return nil, fmt.Errorf("diet plan has no meals")
	}

	plan := &models.FitnessPlan{
		UserSummary:     raw.UserSummary,
		DailyMotivation: raw.DailyMotivation,
		WorkoutPlan: models.WorkoutPlan{
			Title:    raw.WorkoutPlan.Title,
			Duration: raw.WorkoutPlan.Duration,
		},
		DietPlan: models.DietPlan{
			TotalCalories: raw.DietPlan.TotalCalories,
		},
	}

	for i, e := range raw.WorkoutPlan.Exercises {
		if e.Name == "" {
			return nil, fmt.Errorf("exercise %d has no name", i+1)
		}
		if e.Sets <= 0 {
			return nil, fmt.Errorf("exercise %q has non-positive sets", e.Name)
		}
		plan.WorkoutPlan.Exercises = append(plan.WorkoutPlan.Exercises, models.Exercise{
			ID:   uuid.NewString(),
			Name: e.Name,
			Sets: e.Sets,
			Reps: e.Reps,
			Rest: e.Rest,
			Tip:  e.Tip,
		})
	}

	for i, m := range raw.DietPlan.Meals {
		if m.Name == "" {
			return nil, fmt.Errorf("meal %d has no name", i+1)
		}
		if m.Label == "" {
			return nil, fmt.Errorf("meal %q has no label", m.Name)
		}
		plan.DietPlan.Meals = append(plan.DietPlan.Meals, models.Meal{
			ID:       uuid.NewString(),
			Label:    m.Label,
			Name:     m.Name,
			Calories: m.Calories,
			Macros:   m.Macros,
		})
	}

	return plan, nil
}
