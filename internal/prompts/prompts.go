// Package prompts assembles the instruction strings sent to the generation
// model and derives spoken narration from a decoded plan. Everything here is
// pure string work; no provider is contacted.
package prompts

import (
	"fmt"
	"strings"

	"github.com/RB-QX-byte/Fitness/internal/models"
)

// SystemPrompt pins the exact JSON shape the model must return. It is
// prepended to every generation request.
const SystemPrompt = `You are an expert AI Fitness & Nutrition Coach. Your goal is to generate a highly personalized, science-based workout and diet plan in JSON format only.

# Constraints
- Output MUST be valid JSON.
- Do not include any text before or after the JSON block.
- Each exercise must have a clear "name", "sets", "reps", and "rest".
- Each meal must include "name", "calories", and a "macro_split" (protein, carbs, fats).
- All recommendations should be evidence-based and safe.
- Consider the user's fitness level when determining exercise intensity.
- Respect dietary preferences when creating meal plans.

# Expected JSON Structure
{
  "user_summary": "A 2-sentence motivational summary based on the user's specific goals.",
  "daily_motivation": "A short punchy quote for the day.",
  "workout_plan": {
    "title": "Workout Name",
    "duration": "45 mins",
    "exercises": [
      { "name": "Exercise Name", "sets": 3, "reps": "10-12", "rest": "60s", "tip": "AI technique tip" }
    ]
  },
  "diet_plan": {
    "total_calories": 2500,
    "meals": [
      { "label": "Breakfast", "name": "Meal Name", "macros": { "p": "30g", "c": "50g", "f": "15g" } }
    ]
  }
}`

// FallbackPrompt is returned when the profile carries no fields at all.
const FallbackPrompt = "Create a general fitness plan for a beginner looking to improve overall health with home workouts and a balanced diet."

var goalClauses = map[string]string{
	"weight_loss": "Weight Loss - Focus on calorie deficit and fat burning exercises",
	"muscle_gain": "Muscle Gain - Focus on hypertrophy and protein-rich diet",
	"maintenance": "Maintenance - Balanced approach to maintain current fitness",
	"endurance":   "Endurance - Focus on cardiovascular health and stamina",
	"flexibility": "Flexibility - Focus on mobility and stretching routines",
}

var locationClauses = map[string]string{
	"home":    "Home workouts - Use bodyweight and minimal equipment exercises",
	"gym":     "Gym workouts - Full access to weights and machines",
	"outdoor": "Outdoor workouts - Running, calisthenics, park exercises",
}

var dietClauses = map[string]string{
	"veg":     "Vegetarian - No meat, but eggs and dairy are okay",
	"non_veg": "Non-Vegetarian - Include all protein sources",
	"vegan":   "Vegan - Plant-based only, no animal products",
	"keto":    "Ketogenic - High fat, low carb diet",
}

// BuildUserPrompt renders exactly one human-readable clause per present
// profile field. Unknown enum values pass through as their raw value; an
// empty profile yields FallbackPrompt. Never fails.
func BuildUserPrompt(profile *models.UserProfile) string {
	var parts []string
	if profile == nil {
		profile = &models.UserProfile{}
	}

	if profile.Name != nil && *profile.Name != "" {
		parts = append(parts, fmt.Sprintf("Name: %s", *profile.Name))
	}
	if profile.Age != nil && *profile.Age > 0 {
		parts = append(parts, fmt.Sprintf("Age: %d years old", *profile.Age))
	}
	if profile.Gender != nil && *profile.Gender != "" {
		parts = append(parts, fmt.Sprintf("Gender: %s", *profile.Gender))
	}
	if profile.HeightCM != nil && profile.WeightKG != nil && *profile.HeightCM > 0 && *profile.WeightKG > 0 {
		heightM := *profile.HeightCM / 100
		bmi := *profile.WeightKG / (heightM * heightM)
		parts = append(parts, fmt.Sprintf("Height: %gcm, Weight: %gkg (BMI: %.1f)", *profile.HeightCM, *profile.WeightKG, bmi))
	}
	if profile.FitnessGoal != nil && *profile.FitnessGoal != "" {
		parts = append(parts, "Fitness Goal: "+clauseFor(goalClauses, *profile.FitnessGoal))
	}
	if profile.FitnessLevel != nil && *profile.FitnessLevel != "" {
		parts = append(parts, fmt.Sprintf("Fitness Level: %s - adjust exercise complexity accordingly", *profile.FitnessLevel))
	}
	if profile.WorkoutLocation != nil && *profile.WorkoutLocation != "" {
		parts = append(parts, "Workout Location: "+clauseFor(locationClauses, *profile.WorkoutLocation))
	}
	if profile.DietaryPreference != nil && *profile.DietaryPreference != "" {
		parts = append(parts, "Dietary Preference: "+clauseFor(dietClauses, *profile.DietaryPreference))
	}
	if profile.MedicalHistory != nil && *profile.MedicalHistory != "" {
		parts = append(parts, fmt.Sprintf("Medical Considerations: %s - Avoid exercises that may aggravate these conditions", *profile.MedicalHistory))
	}
	if profile.StressLevel != nil && *profile.StressLevel != "" {
		advice := "Standard intensity is fine"
		if *profile.StressLevel == "high" {
			advice = "Include relaxation and recovery exercises"
		}
		parts = append(parts, fmt.Sprintf("Stress Level: %s - %s", *profile.StressLevel, advice))
	}
	if profile.SleepHours != nil && *profile.SleepHours > 0 {
		advice := "Good recovery potential"
		if *profile.SleepHours < 7 {
			advice = "Consider lower intensity due to recovery needs"
		}
		parts = append(parts, fmt.Sprintf("Average Sleep: %g hours - %s", *profile.SleepHours, advice))
	}

	if len(parts) == 0 {
		return FallbackPrompt
	}

	return "Create a personalized fitness plan based on the following user profile:\n\n" +
		strings.Join(parts, "\n") +
		"\n\nGenerate a complete workout and diet plan optimized for their goals."
}

func clauseFor(table map[string]string, value string) string {
	if clause, ok := table[value]; ok {
		return clause
	}
	return value
}

// Voice-script sections.
const (
	SectionWorkout = "workout"
	SectionDiet    = "diet"
)

// NoPlanScript is spoken when narration is requested before any plan exists.
const NoPlanScript = "Unable to read the plan. Please generate a new plan first."

// VoiceScript flattens one section of a plan into natural-language narration
// for text-to-speech. Synthesis itself happens elsewhere.
func VoiceScript(section string, plan *models.FitnessPlan) string {
	if plan == nil {
		return NoPlanScript
	}

	if section == SectionWorkout {
		lines := make([]string, 0, len(plan.WorkoutPlan.Exercises))
		for i, e := range plan.WorkoutPlan.Exercises {
			lines = append(lines, fmt.Sprintf(
				"Exercise %d: %s. Perform %d sets of %s repetitions. Rest for %s. Pro tip: %s",
				i+1, e.Name, e.Sets, e.Reps, e.Rest, e.Tip,
			))
		}
		return fmt.Sprintf(
			"Your workout for today is %s. Total duration: %s. Let's begin! %s. Great job completing your workout!",
			plan.WorkoutPlan.Title, plan.WorkoutPlan.Duration, strings.Join(lines, ". Next, "),
		)
	}

	lines := make([]string, 0, len(plan.DietPlan.Meals))
	for _, m := range plan.DietPlan.Meals {
		lines = append(lines, fmt.Sprintf(
			"For %s, have %s. This provides %s of protein, %s of carbs, and %s of fats",
			m.Label, m.Name, m.Macros.Protein, m.Macros.Carbs, m.Macros.Fats,
		))
	}
	return fmt.Sprintf(
		"Your nutrition plan for today totals %d calories. %s. Stay hydrated and enjoy your meals!",
		plan.DietPlan.TotalCalories, strings.Join(lines, ". "),
	)
}
