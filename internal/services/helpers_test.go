package services

import "github.com/RB-QX-byte/Fitness/internal/models"

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

const samplePlanJSON = `{
	"user_summary": "You are on the right track.",
	"daily_motivation": "One more rep.",
	"workout_plan": {
		"title": "Full Body Burner",
		"duration": "45 mins",
		"exercises": [
			{"name": "Push Up", "sets": 3, "reps": "10-12", "rest": "60s", "tip": "Keep your core tight"},
			{"name": "Squat", "sets": 4, "reps": "8-10", "rest": "90s", "tip": "Drive through your heels"}
		]
	},
	"diet_plan": {
		"total_calories": 2200,
		"meals": [
			{"label": "Breakfast", "name": "Oatmeal with Berries", "calories": 450, "macros": {"p": "20g", "c": "60g", "f": "10g"}},
			{"label": "Lunch", "name": "Grilled Chicken Salad", "macros": {"p": "40g", "c": "25g", "f": "15g"}}
		]
	}
}`

func completeProfile() *models.UserProfile {
	return &models.UserProfile{
		Name:              strPtr("Sam"),
		Age:               intPtr(28),
		Gender:            strPtr("male"),
		HeightCM:          floatPtr(178),
		WeightKG:          floatPtr(75),
		FitnessGoal:       strPtr("muscle_gain"),
		FitnessLevel:      strPtr("intermediate"),
		WorkoutLocation:   strPtr("gym"),
		DietaryPreference: strPtr("non_veg"),
	}
}
