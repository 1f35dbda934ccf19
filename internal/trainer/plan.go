package trainer

import (
	"github.com/2beens/fitcoach/internal/fitness"
)

type PlanType string

const (
	PlanTypeWorkout PlanType = "workout"
	PlanTypeDiet    PlanType = "diet"
	PlanTypeChat    PlanType = "chat"
)

// PlanRequest is the payload accepted by the trainer endpoint.
type PlanRequest struct {
	Type         PlanType              `json:"type"`
	UserProfile  fitness.UserProfile   `json:"userProfile"`
	Messages     []fitness.ChatMessage `json:"messages,omitempty"`
	CustomAPIKey string                `json:"customApiKey,omitempty"`
}

type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest"`
	Notes string `json:"notes,omitempty"`
}

type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Duration  string     `json:"duration"`
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	WeeklyPlan []WorkoutDay `json:"weeklyPlan"`
	Tips       []string     `json:"tips"`
}

type Meal struct {
	Meal        string   `json:"meal"`
	Time        string   `json:"time"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
}

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type DailyPlan struct {
	TargetCalories int    `json:"targetCalories"`
	Meals          []Meal `json:"meals"`
	TotalMacros    Macros `json:"totalMacros"`
}

type DietPlan struct {
	DailyPlan DailyPlan `json:"dailyPlan"`
	Tips      []string  `json:"tips"`
}

// GeneratedPlan is the normalized result of one plan request; exactly one
// of the three payload fields is set, matching Type.
type GeneratedPlan struct {
	Type      PlanType
	Workout   *WorkoutPlan
	Diet      *DietPlan
	ChatReply string
}
