package models

// Enum values accepted in a UserProfile. The prompt builder falls back to
// the raw value for anything outside these sets, so they gate onboarding
// validation only.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

var (
	FitnessGoals     = []string{"weight_loss", "muscle_gain", "maintenance", "endurance", "flexibility"}
	FitnessLevels    = []string{"beginner", "intermediate", "advanced"}
	WorkoutLocations = []string{"home", "gym", "outdoor"}
	DietPreferences  = []string{"veg", "non_veg", "vegan", "keto"}
	StressLevels     = []string{"low", "medium", "high"}
)

// UserProfile is the onboarding intake that drives plan generation. Every
// field is optional at the wire level; Complete reports whether the profile
// can gate dashboard access.
type UserProfile struct {
	Name              *string  `json:"name,omitempty"`
	Age               *int     `json:"age,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	HeightCM          *float64 `json:"height_cm,omitempty"`
	WeightKG          *float64 `json:"weight_kg,omitempty"`
	FitnessGoal       *string  `json:"fitness_goal,omitempty"`
	FitnessLevel      *string  `json:"fitness_level,omitempty"`
	WorkoutLocation   *string  `json:"workout_location,omitempty"`
	DietaryPreference *string  `json:"dietary_preference,omitempty"`
	MedicalHistory    *string  `json:"medical_history,omitempty"`
	StressLevel       *string  `json:"stress_level,omitempty"`
	SleepHours        *float64 `json:"sleep_hours,omitempty"`
}

// Complete reports whether every required field is set. Medical history,
// stress level and sleep hours stay optional.
func (p *UserProfile) Complete() bool {
	if p == nil {
		return false
	}
	return hasText(p.Name) &&
		p.Age != nil && *p.Age > 0 &&
		hasText(p.Gender) &&
		p.HeightCM != nil && *p.HeightCM > 0 &&
		p.WeightKG != nil && *p.WeightKG > 0 &&
		hasText(p.FitnessGoal) &&
		hasText(p.FitnessLevel) &&
		hasText(p.WorkoutLocation) &&
		hasText(p.DietaryPreference)
}

// Merge copies every set field of other into p. Used by the onboarding flow
// to accumulate the draft step by step.
func (p *UserProfile) Merge(other *UserProfile) {
	if other == nil {
		return
	}
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.Age != nil {
		p.Age = other.Age
	}
	if other.Gender != nil {
		p.Gender = other.Gender
	}
	if other.HeightCM != nil {
		p.HeightCM = other.HeightCM
	}
	if other.WeightKG != nil {
		p.WeightKG = other.WeightKG
	}
	if other.FitnessGoal != nil {
		p.FitnessGoal = other.FitnessGoal
	}
	if other.FitnessLevel != nil {
		p.FitnessLevel = other.FitnessLevel
	}
	if other.WorkoutLocation != nil {
		p.WorkoutLocation = other.WorkoutLocation
	}
	if other.DietaryPreference != nil {
		p.DietaryPreference = other.DietaryPreference
	}
	if other.MedicalHistory != nil {
		p.MedicalHistory = other.MedicalHistory
	}
	if other.StressLevel != nil {
		p.StressLevel = other.StressLevel
	}
	if other.SleepHours != nil {
		p.SleepHours = other.SleepHours
	}
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}
