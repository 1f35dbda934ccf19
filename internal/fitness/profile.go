package fitness

import (
	"errors"
	"fmt"
	"time"
)

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

type HeightUnit string

const (
	HeightUnitCm HeightUnit = "cm"
	HeightUnitFt HeightUnit = "ft"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
	GoalBuild    Goal = "build"
)

type FitnessLevel string

const (
	FitnessLevelBeginner     FitnessLevel = "beginner"
	FitnessLevelIntermediate FitnessLevel = "intermediate"
	FitnessLevelAdvanced     FitnessLevel = "advanced"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// UserProfile is the onboarding data every plan request carries.
// Formulas downstream assume a validated profile, so Validate is
// expected to be called once at the request boundary.
type UserProfile struct {
	Name               string        `json:"name"`
	Weight             float64       `json:"weight"`
	WeightUnit         WeightUnit    `json:"weightUnit"`
	Height             float64       `json:"height"`
	HeightUnit         HeightUnit    `json:"heightUnit"`
	Age                int           `json:"age"`
	Gender             Gender        `json:"gender"`
	Goal               Goal          `json:"goal"`
	FitnessLevel       FitnessLevel  `json:"fitnessLevel"`
	ActivityLevel      ActivityLevel `json:"activityLevel"`
	Equipment          string        `json:"equipment,omitempty"`
	DietaryPreferences string        `json:"dietaryPreferences,omitempty"`
	Allergies          string        `json:"allergies,omitempty"`
}

var (
	ErrInvalidWeight = errors.New("weight must be positive")
	ErrInvalidHeight = errors.New("height must be positive")
	ErrInvalidAge    = errors.New("age must be a positive integer")
)

func (p *UserProfile) Validate() error {
	if p.Weight <= 0 {
		return ErrInvalidWeight
	}
	if p.Height <= 0 {
		return ErrInvalidHeight
	}
	if p.Age <= 0 {
		return ErrInvalidAge
	}

	switch p.WeightUnit {
	case WeightUnitKg, WeightUnitLbs:
	default:
		return fmt.Errorf("unknown weight unit: %q", p.WeightUnit)
	}

	switch p.HeightUnit {
	case HeightUnitCm, HeightUnitFt:
	default:
		return fmt.Errorf("unknown height unit: %q", p.HeightUnit)
	}

	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("unknown gender: %q", p.Gender)
	}

	switch p.Goal {
	case GoalLose, GoalGain, GoalMaintain, GoalBuild:
	default:
		return fmt.Errorf("unknown goal: %q", p.Goal)
	}

	switch p.FitnessLevel {
	case FitnessLevelBeginner, FitnessLevelIntermediate, FitnessLevelAdvanced:
	default:
		return fmt.Errorf("unknown fitness level: %q", p.FitnessLevel)
	}

	// activity level is deliberately not checked: unknown values fall
	// back to the moderate multiplier in the estimator

	return nil
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ProgressEntry is a single progress-tracker data point.
type ProgressEntry struct {
	Date              time.Time `json:"date"`
	Weight            *float64  `json:"weight,omitempty"`
	WorkoutsCompleted *int      `json:"workoutsCompleted,omitempty"`
	Notes             string    `json:"notes,omitempty"`
}
