package nutrition

import (
	"math"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

const (
	rerCoefficient = 70.0
	rerExponent    = 0.75
	seniorAge      = 7.0
)

type activityFactors struct {
	young  float64
	senior float64
}

var activityMultipliers = map[models.ActivityLevel]activityFactors{
	models.ActivityLow:    {young: 1.0, senior: 1.0},
	models.ActivityNormal: {young: 1.3, senior: 1.1},
	models.ActivityHigh:   {young: 1.6, senior: 1.3},
}

// CalculateRER returns the resting energy requirement in kcal/day for a body
// weight in kg.
func CalculateRER(weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return rerCoefficient * math.Pow(weight, rerExponent)
}

// CalculateDER returns the daily energy requirement in kcal, or 0 when the
// profile is not complete enough to compute it.
func CalculateDER(profile models.DogProfile) int {
	if profile.Weight == nil || *profile.Weight <= 0 || profile.Age == nil {
		return 0
	}

	return int(math.Round(CalculateRER(*profile.Weight) * ActivityMultiplier(*profile.Age, profile.Activity)))
}

// ActivityMultiplier picks the DER factor for an age band and activity level.
// Unknown or unset activity yields 1.0.
func ActivityMultiplier(age float64, activity models.ActivityLevel) float64 {
	factors, ok := activityMultipliers[activity]
	if !ok {
		return 1.0
	}
	if age <= seniorAge {
		return factors.young
	}
	return factors.senior
}
