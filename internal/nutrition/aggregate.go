package nutrition

import (
	"math"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// Totals is the sum of every selected food weighted by its amount.
// Nutrients holds an entry for every known nutrient, zero when nothing
// contributed to it.
type Totals struct {
	Calories  float64                       `json:"calories"`
	Weight    float64                       `json:"weight"`
	Nutrients map[models.NutrientID]float64 `json:"nutrients"`

	present map[models.NutrientID]bool
}

func newTotals() Totals {
	nutrients := make(map[models.NutrientID]float64, len(models.KnownNutrients))
	for _, id := range models.KnownNutrients {
		nutrients[id] = 0
	}
	return Totals{
		Nutrients: nutrients,
		present:   make(map[models.NutrientID]bool),
	}
}

// Aggregate sums calories, weight and nutrients over the selected foods.
// Nutrient keys outside the known set are ignored.
func Aggregate(foods []models.SelectedFood) Totals {
	totals := newTotals()

	for _, food := range foods {
		ratio := food.Amount / 100
		totals.Calories += food.Calories * ratio
		totals.Weight += food.Amount

		for id, amount := range food.Nutrients {
			if !id.Known() {
				continue
			}
			totals.Nutrients[id] += amount * ratio
			totals.present[id] = true
		}
	}

	return totals
}

// Present reports whether at least one food carried the nutrient.
func (t Totals) Present(id models.NutrientID) bool {
	return t.present[id]
}

// RoundedCalories is the calorie total as displayed.
func (t Totals) RoundedCalories() int {
	return int(math.Round(t.Calories))
}

// DryMatterWeight is the diet weight without its water content.
func (t Totals) DryMatterWeight() float64 {
	return t.Weight - t.Nutrients[models.NutrientMoisture]
}

// MoistureRate is the share of the diet weight that is water, in [0, 1].
func (t Totals) MoistureRate() float64 {
	if t.Weight <= 0 {
		return 0
	}
	return t.Nutrients[models.NutrientMoisture] / t.Weight
}

// DisplayIntake returns the intake shown for a nutrient. Moisture is a
// percentage of the total weight; everything else is re-expressed on a dry
// matter basis as raw / (1 - moistureRate).
func (t Totals) DisplayIntake(id models.NutrientID) float64 {
	moistureRate := t.MoistureRate()
	if id == models.NutrientMoisture {
		return moistureRate * 100
	}

	raw := t.Nutrients[id]
	dryFraction := 1 - moistureRate
	if dryFraction <= 0 {
		return raw
	}
	return raw / dryFraction
}
