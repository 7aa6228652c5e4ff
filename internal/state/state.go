package state

import (
	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// State is everything the calculator screen needs. It is a plain value that
// serialises to JSON, so the browser can hold it and post it back.
type State struct {
	Profile          models.DogProfile     `json:"profile"`
	Foods            []models.SelectedFood `json:"foods"`
	FeedingMode      models.FeedingMode    `json:"feedingMode"`
	DryFoodAmount    float64               `json:"dryFoodAmount"`
	SupplementAmount float64               `json:"supplementAmount"`
	Calculated       bool                  `json:"calculated"`
}

// New returns the initial state of an empty calculator.
func New() State {
	return State{FeedingMode: models.FeedingHomemade}
}

// Clone returns a deep copy so reducers never share backing arrays or
// profile pointers with their input.
func (s State) Clone() State {
	out := s
	out.Profile = cloneProfile(s.Profile)
	if s.Foods != nil {
		out.Foods = make([]models.SelectedFood, len(s.Foods))
		copy(out.Foods, s.Foods)
	}
	return out
}

// DietFoods lists the foods evaluated by a diagnosis: the caregiver's
// selection, the dry food base in topping mode and the supplement when one is
// given.
func (s State) DietFoods() []models.SelectedFood {
	foods := make([]models.SelectedFood, 0, len(s.Foods)+2)
	foods = append(foods, s.Foods...)

	if s.FeedingMode == models.FeedingTopping && s.DryFoodAmount > 0 {
		foods = append(foods, models.SelectedFood{Ingredient: models.DryFoodTemplate, Amount: s.DryFoodAmount})
	}
	if s.SupplementAmount > 0 {
		foods = append(foods, models.SelectedFood{Ingredient: models.SupplementTemplate, Amount: s.SupplementAmount})
	}
	return foods
}

func cloneProfile(p models.DogProfile) models.DogProfile {
	out := p
	if p.Age != nil {
		out.Age = models.Float(*p.Age)
	}
	if p.Weight != nil {
		out.Weight = models.Float(*p.Weight)
	}
	return out
}
