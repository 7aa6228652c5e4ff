package models

import (
	"encoding/json"
	"fmt"
)

// Aliases holds alternative readings used for search. The catalog stores
// either a single string or a list.
type Aliases []string

// UnmarshalJSON accepts both `"とりささみ"` and `["とりささみ", "ささみ"]`.
func (a *Aliases) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*a = nil
		} else {
			*a = Aliases{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("aliases must be a string or list of strings: %w", err)
	}
	*a = many
	return nil
}

// Ingredient is one immutable catalog entry. Calories and nutrients are per
// 100 g.
type Ingredient struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Kana      Aliases                `json:"kana"`
	Category  string                 `json:"category,omitempty"`
	Calories  float64                `json:"calories"`
	Nutrients map[NutrientID]float64 `json:"nutrients"`
}

// SelectedFood is an ingredient with the amount (grams) the caregiver chose.
type SelectedFood struct {
	Ingredient
	Amount float64 `json:"amount"`
}

// CaloriesForAmount returns the energy contributed by the selected amount.
func (f SelectedFood) CaloriesForAmount() float64 {
	return f.Calories * (f.Amount / 100)
}

const (
	// DefaultFoodAmount is the amount given to a freshly added ingredient.
	DefaultFoodAmount = 10.0
	// AmountStep is the increment used by the +/- controls.
	AmountStep = 10.0

	DryFoodID    = "dry-food-001"
	SupplementID = "supplement-001"
)

// DryFoodTemplate approximates a typical complete dry food (350 kcal/100 g).
var DryFoodTemplate = Ingredient{
	ID:       DryFoodID,
	Name:     "ドライフード",
	Kana:     Aliases{"どらいふーど"},
	Category: "template",
	Calories: 350,
	Nutrients: map[NutrientID]float64{
		NutrientProtein:      30,
		NutrientFat:          15,
		NutrientCarbohydrate: 30,
		NutrientFiber:        5,
		NutrientDHAEPA:       550,
		NutrientMoisture:     10,
		NutrientCalcium:      1.3,
		NutrientPhosphorus:   1,
		NutrientPotassium:    0.8,
		NutrientSodium:       0.4,
		NutrientMagnesium:    0.1,
		NutrientIron:         16,
		NutrientCopper:       1.8,
		NutrientManganese:    1.8,
		NutrientZinc:         17,
		NutrientIodine:       200,
		NutrientSelenium:     50,
		NutrientVitaminA:     1500,
		NutrientVitaminD:     200,
		NutrientVitaminE:     17,
		NutrientVitaminB1:    3,
		NutrientVitaminB2:    0.6,
		NutrientVitaminB5:    3,
		NutrientVitaminB3:    20,
		NutrientVitaminB6:    0.3,
		NutrientFolicAcid:    0.2,
		NutrientVitaminB12:   0.01,
	},
}

// SupplementTemplate is a generic vitamin and mineral premix powder.
var SupplementTemplate = Ingredient{
	ID:       SupplementID,
	Name:     "ビタミンサプリメント",
	Kana:     Aliases{"びたみんさぷりめんと"},
	Category: "template",
	Calories: 200,
	Nutrients: map[NutrientID]float64{
		NutrientMoisture:   5,
		NutrientCalcium:    12,
		NutrientPhosphorus: 6,
		NutrientMagnesium:  1,
		NutrientIron:       400,
		NutrientCopper:     60,
		NutrientManganese:  40,
		NutrientZinc:       800,
		NutrientIodine:     9000,
		NutrientSelenium:   2500,
		NutrientVitaminA:   50000,
		NutrientVitaminD:   5000,
		NutrientVitaminE:   500,
		NutrientVitaminB1:  20,
		NutrientVitaminB2:  40,
		NutrientVitaminB3:  120,
		NutrientVitaminB5:  100,
		NutrientVitaminB6:  12,
		NutrientFolicAcid:  2,
		NutrientVitaminB12: 0.25,
	},
}

// IsTemplate reports whether the ingredient is one of the built-in templates
// rather than a caregiver-picked catalog entry.
func (i Ingredient) IsTemplate() bool {
	return i.ID == DryFoodID || i.ID == SupplementID
}
