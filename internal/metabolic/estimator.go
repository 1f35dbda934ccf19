// Package metabolic estimates daily energy expenditure from a user profile:
// basal metabolic rate (Mifflin-St Jeor), total daily energy expenditure,
// and a goal-adjusted calorie target. Pure functions, no I/O.
package metabolic

import (
	"math"

	"github.com/2beens/fitcoach/internal/fitness"
)

const (
	lbsToKg = 0.453592
	ftToCm  = 30.48

	caloriesDeficitLose = 500
	caloriesSurplusGain = 300
)

var activityMultipliers = map[fitness.ActivityLevel]float64{
	fitness.ActivitySedentary:  1.2,
	fitness.ActivityLight:      1.375,
	fitness.ActivityModerate:   1.55,
	fitness.ActivityActive:     1.725,
	fitness.ActivityVeryActive: 1.9,
}

// EnergyEstimate is derived per request and never persisted.
type EnergyEstimate struct {
	BMR            float64 `json:"bmr"`
	TDEE           int     `json:"tdee"`
	TargetCalories int     `json:"targetCalories"`
}

// Estimate computes the full BMR -> TDEE -> target calories pipeline.
// It trusts its input: out-of-range values are a caller responsibility,
// no clamping of implausible results is done here.
func Estimate(profile fitness.UserProfile) EnergyEstimate {
	bmr := BMR(profile)
	tdee := TDEE(bmr, profile.ActivityLevel)
	return EnergyEstimate{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, profile.Goal),
	}
}

// BMR returns the basal metabolic rate in kcal/day, per Mifflin-St Jeor.
// The "other" gender uses the female formula, same as the web client
// always did.
func BMR(profile fitness.UserProfile) float64 {
	weightKg := profile.Weight
	if profile.WeightUnit == fitness.WeightUnitLbs {
		weightKg *= lbsToKg
	}

	heightCm := profile.Height
	if profile.HeightUnit == fitness.HeightUnitFt {
		heightCm *= ftToCm
	}

	age := float64(profile.Age)

	if profile.Gender == fitness.GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// TDEE scales the given BMR by the activity multiplier, rounded to the
// nearest whole calorie. Unrecognized activity levels use the moderate
// multiplier.
func TDEE(bmr float64, activityLevel fitness.ActivityLevel) int {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers[fitness.ActivityModerate]
	}
	return int(math.Round(bmr * multiplier))
}

// TargetCalories adjusts the TDEE for the fitness goal: a deficit for
// losing weight, a surplus for gaining, unchanged otherwise.
func TargetCalories(tdee int, goal fitness.Goal) int {
	switch goal {
	case fitness.GoalLose:
		return tdee - caloriesDeficitLose
	case fitness.GoalGain:
		return tdee + caloriesSurplusGain
	default:
		return tdee
	}
}
