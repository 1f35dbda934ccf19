package metabolic

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcoach/internal/fitness"
)

func testProfile() fitness.UserProfile {
	return fitness.UserProfile{
		Weight:        70,
		WeightUnit:    fitness.WeightUnitKg,
		Height:        175,
		HeightUnit:    fitness.HeightUnitCm,
		Age:           30,
		Gender:        fitness.GenderMale,
		Goal:          fitness.GoalLose,
		ActivityLevel: fitness.ActivityModerate,
	}
}

func TestEstimate(t *testing.T) {
	// 88.362 + 13.397*70 + 4.799*175 - 5.677*30 = 1671.511
	estimate := Estimate(testProfile())
	assert.InDelta(t, 1671.511, estimate.BMR, 0.001)
	assert.Equal(t, 2591, estimate.TDEE) // round(1671.511 * 1.55)
	assert.Equal(t, 2091, estimate.TargetCalories)
}

func TestEstimate_Deterministic(t *testing.T) {
	profile := testProfile()
	first := Estimate(profile)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Estimate(profile))
	}
}

func TestBMR_UnitConversion(t *testing.T) {
	kgProfile := testProfile()

	lbsProfile := kgProfile
	lbsProfile.Weight = 154 // ~69.85 kg
	lbsProfile.WeightUnit = fitness.WeightUnitLbs

	// same person, different units: BMR within one kcal
	assert.InDelta(t, BMR(kgProfile), BMR(lbsProfile), 1.0)

	ftProfile := kgProfile
	ftProfile.Height = 175.0 / 30.48
	ftProfile.HeightUnit = fitness.HeightUnitFt
	assert.InDelta(t, BMR(kgProfile), BMR(ftProfile), 0.001)
}

func TestBMR_FemaleAndOther(t *testing.T) {
	profile := testProfile()
	profile.Gender = fitness.GenderFemale
	// 447.593 + 9.247*70 + 3.098*175 - 4.330*30 = 1509.833
	require.InDelta(t, 1509.833, BMR(profile), 0.001)

	// "other" maps onto the female formula
	profile.Gender = fitness.GenderOther
	assert.InDelta(t, 1509.833, BMR(profile), 0.001)
}

func TestTDEE_ActivityMultipliers(t *testing.T) {
	bmr := 1671.511
	assert.Equal(t, int(math.Round(bmr*1.2)), TDEE(bmr, fitness.ActivitySedentary))
	assert.Equal(t, int(math.Round(bmr*1.375)), TDEE(bmr, fitness.ActivityLight))
	assert.Equal(t, int(math.Round(bmr*1.55)), TDEE(bmr, fitness.ActivityModerate))
	assert.Equal(t, int(math.Round(bmr*1.725)), TDEE(bmr, fitness.ActivityActive))
	assert.Equal(t, int(math.Round(bmr*1.9)), TDEE(bmr, fitness.ActivityVeryActive))

	// unknown activity levels fall back to moderate
	assert.Equal(t, TDEE(bmr, fitness.ActivityModerate), TDEE(bmr, "couch-potato"))
	assert.Equal(t, TDEE(bmr, fitness.ActivityModerate), TDEE(bmr, ""))
}

func TestTargetCalories(t *testing.T) {
	assert.Equal(t, 1500, TargetCalories(2000, fitness.GoalLose))
	assert.Equal(t, 2300, TargetCalories(2000, fitness.GoalGain))
	assert.Equal(t, 2000, TargetCalories(2000, fitness.GoalMaintain))
	assert.Equal(t, 2000, TargetCalories(2000, fitness.GoalBuild))
	assert.Equal(t, 2000, TargetCalories(2000, "whatever"))
}

func TestEstimate_GoalAdjustments(t *testing.T) {
	for i := 0; i < 50; i++ {
		profile := fitness.UserProfile{
			Weight:        float64(gofakeit.IntRange(45, 140)),
			WeightUnit:    fitness.WeightUnitKg,
			Height:        float64(gofakeit.IntRange(140, 210)),
			HeightUnit:    fitness.HeightUnitCm,
			Age:           gofakeit.IntRange(18, 80),
			Gender:        fitness.GenderFemale,
			ActivityLevel: fitness.ActivityLight,
		}

		profile.Goal = fitness.GoalMaintain
		maintain := Estimate(profile)
		assert.Equal(t, maintain.TDEE, maintain.TargetCalories)

		profile.Goal = fitness.GoalLose
		assert.Equal(t, maintain.TDEE-500, Estimate(profile).TargetCalories)

		profile.Goal = fitness.GoalGain
		assert.Equal(t, maintain.TDEE+300, Estimate(profile).TargetCalories)
	}
}
