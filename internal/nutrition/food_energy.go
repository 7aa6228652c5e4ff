package nutrition

import (
	"math"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// FoodEnergy is the kcal line shown next to a food in the list.
type FoodEnergy struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Calories int     `json:"calories"`
}

// FoodCalories returns the rounded energy of every food, in order.
func FoodCalories(foods []models.SelectedFood) []FoodEnergy {
	out := make([]FoodEnergy, 0, len(foods))
	for _, food := range foods {
		out = append(out, FoodEnergy{
			ID:       food.ID,
			Name:     food.Name,
			Amount:   food.Amount,
			Calories: int(math.Round(food.CaloriesForAmount())),
		})
	}
	return out
}
