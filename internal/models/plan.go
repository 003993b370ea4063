package models

import "time"

// Macros uses the single-letter keys the generation model is instructed to
// emit (p/c/f), each a string with a unit suffix like "30g".
type Macros struct {
	Protein string `json:"p"`
	Carbs   string `json:"c"`
	Fats    string `json:"f"`
}

// Exercise is one entry of a workout plan. ID is assigned server-side when
// the provider output is decoded; it is the stable lookup key for detail
// views, never the display name.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
	Tip  string `json:"tip"`
}

type Meal struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Calories *int   `json:"calories,omitempty"`
	Macros   Macros `json:"macros"`
}

type WorkoutPlan struct {
	Title     string     `json:"title"`
	Duration  string     `json:"duration"`
	Exercises []Exercise `json:"exercises"`
}

type DietPlan struct {
	TotalCalories int    `json:"total_calories"`
	Meals         []Meal `json:"meals"`
}

// FitnessPlan is the structured output of the generation gateway. It is
// created atomically from one provider response and replaced wholesale on
// regeneration, never patched.
type FitnessPlan struct {
	UserSummary     string      `json:"user_summary"`
	DailyMotivation string      `json:"daily_motivation"`
	WorkoutPlan     WorkoutPlan `json:"workout_plan"`
	DietPlan        DietPlan    `json:"diet_plan"`
}

// StoredPlan is the persisted envelope for a plan.
type StoredPlan struct {
	Plan    FitnessPlan `json:"plan"`
	SavedAt time.Time   `json:"saved_at"`
}

// ExerciseByID returns the exercise with the given id, or nil.
func (p *FitnessPlan) ExerciseByID(id string) *Exercise {
	for i := range p.WorkoutPlan.Exercises {
		if p.WorkoutPlan.Exercises[i].ID == id {
			return &p.WorkoutPlan.Exercises[i]
		}
	}
	return nil
}

// MealByID returns the meal with the given id, or nil.
func (p *FitnessPlan) MealByID(id string) *Meal {
	for i := range p.DietPlan.Meals {
		if p.DietPlan.Meals[i].ID == id {
			return &p.DietPlan.Meals[i]
		}
	}
	return nil
}

// ExerciseByName returns the first exercise with the given display name.
// Kept for clients that predate stable ids; names are not guaranteed unique.
func (p *FitnessPlan) ExerciseByName(name string) *Exercise {
	for i := range p.WorkoutPlan.Exercises {
		if p.WorkoutPlan.Exercises[i].Name == name {
			return &p.WorkoutPlan.Exercises[i]
		}
	}
	return nil
}

// MealByName returns the first meal with the given display name.
func (p *FitnessPlan) MealByName(name string) *Meal {
	for i := range p.DietPlan.Meals {
		if p.DietPlan.Meals[i].Name == name {
			return &p.DietPlan.Meals[i]
		}
	}
	return nil
}
