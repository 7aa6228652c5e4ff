package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

var chicken = models.Ingredient{
	ID:        "chicken-breast",
	Name:      "鶏むね肉",
	Calories:  105,
	Nutrients: map[models.NutrientID]float64{models.NutrientProtein: 23.3},
}

func withFoods(amounts ...float64) State {
	s := New()
	for _, amount := range amounts {
		s.Foods = append(s.Foods, models.SelectedFood{Ingredient: chicken, Amount: amount})
	}
	return s
}

func mustReduce(t *testing.T, s State, action Action) State {
	t.Helper()
	next, err := Reduce(s, action)
	if err != nil {
		t.Fatalf("Reduce(%s) returned error: %v", action.Type, err)
	}
	return next
}

func TestReduceAddFoodUsesDefaultAmount(t *testing.T) {
	next := mustReduce(t, New(), Action{Type: ActionAddFood, Ingredient: &chicken})

	if len(next.Foods) != 1 {
		t.Fatalf("foods = %d, want 1", len(next.Foods))
	}
	if next.Foods[0].Amount != 10 || next.Foods[0].ID != chicken.ID {
		t.Fatalf("added food = %+v, want chicken at 10 g", next.Foods[0])
	}

	if _, err := Reduce(New(), Action{Type: ActionAddFood}); !errors.Is(err, ErrMissingIngredient) {
		t.Fatalf("missing ingredient error = %v, want ErrMissingIngredient", err)
	}
}

func TestReduceSetAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr error
	}{
		{name: "ascii digits", value: "120", want: 120},
		{name: "full width digits", value: "１２０", want: 120},
		{name: "empty means zero", value: "", want: 0},
		{name: "decimal rejected", value: "12.5", wantErr: ErrInvalidAmount},
		{name: "letters rejected", value: "12g", wantErr: ErrInvalidAmount},
		{name: "negative rejected", value: "-5", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withFoods(50)
			next, err := Reduce(s, Action{Type: ActionSetAmount, Index: 0, Value: tt.value})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if next.Foods[0].Amount != 50 {
					t.Fatalf("state changed on error: amount %v", next.Foods[0].Amount)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Foods[0].Amount != tt.want {
				t.Fatalf("amount = %v, want %v", next.Foods[0].Amount, tt.want)
			}
		})
	}
}

func TestReduceIncrementDecrement(t *testing.T) {
	s := withFoods(5)

	s = mustReduce(t, s, Action{Type: ActionIncrement, Index: 0})
	if s.Foods[0].Amount != 15 {
		t.Fatalf("after increment amount = %v, want 15", s.Foods[0].Amount)
	}

	s = mustReduce(t, s, Action{Type: ActionDecrement, Index: 0})
	s = mustReduce(t, s, Action{Type: ActionDecrement, Index: 0})
	if s.Foods[0].Amount != 0 {
		t.Fatalf("after decrements amount = %v, want floor 0", s.Foods[0].Amount)
	}
}

func TestReduceRemoveFood(t *testing.T) {
	s := withFoods(10, 20, 30)

	next := mustReduce(t, s, Action{Type: ActionRemoveFood, Index: 1})
	if len(next.Foods) != 2 || next.Foods[0].Amount != 10 || next.Foods[1].Amount != 30 {
		t.Fatalf("foods after remove = %+v", next.Foods)
	}
	if len(s.Foods) != 3 || s.Foods[1].Amount != 20 {
		t.Fatalf("input state mutated: %+v", s.Foods)
	}
}

func TestReduceIndexOutOfRange(t *testing.T) {
	for _, actionType := range []ActionType{ActionSetAmount, ActionIncrement, ActionDecrement, ActionRemoveFood} {
		for _, index := range []int{-1, 1, 5} {
			_, err := Reduce(withFoods(10), Action{Type: actionType, Index: index, Value: "1"})
			if !errors.Is(err, ErrFoodIndex) {
				t.Errorf("%s index %d: error = %v, want ErrFoodIndex", actionType, index, err)
			}
		}
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := withFoods(40)
	s.Profile = models.DogProfile{Name: "Hana", Age: models.Float(2), Weight: models.Float(5)}
	snapshot := s.Clone()

	actions := []Action{
		{Type: ActionIncrement, Index: 0},
		{Type: ActionSetAmount, Index: 0, Value: "90"},
		{Type: ActionAddFood, Ingredient: &chicken},
		{Type: ActionSetProfile, Profile: &models.DogProfile{Name: "Sora"}},
		{Type: ActionCalculate},
	}
	for _, action := range actions {
		mustReduce(t, s, action)
	}

	if !reflect.DeepEqual(s, snapshot) {
		t.Fatalf("input state mutated:\n got %+v\nwant %+v", s, snapshot)
	}
}

func TestReduceSetProfileNormalisesActivity(t *testing.T) {
	profile := models.DogProfile{Name: "Momo", Age: models.Float(4), Weight: models.Float(6.5), Activity: "HIGH"}
	next := mustReduce(t, New(), Action{Type: ActionSetProfile, Profile: &profile})

	if next.Profile.Activity != models.ActivityHigh {
		t.Fatalf("activity = %q, want high", next.Profile.Activity)
	}

	profile.Activity = "couch"
	next = mustReduce(t, New(), Action{Type: ActionSetProfile, Profile: &profile})
	if next.Profile.Activity != models.ActivityUnset {
		t.Fatalf("activity = %q, want unset", next.Profile.Activity)
	}
}

func TestReduceFeedingModeAndTemplates(t *testing.T) {
	s := withFoods(100)
	s = mustReduce(t, s, Action{Type: ActionSetFeedingMode, Mode: models.FeedingTopping})
	s = mustReduce(t, s, Action{Type: ActionSetDryFoodAmount, Value: "80"})
	s = mustReduce(t, s, Action{Type: ActionSetSupplementAmount, Value: "２"})

	foods := s.DietFoods()
	if len(foods) != 3 {
		t.Fatalf("diet foods = %d, want 3", len(foods))
	}
	if foods[1].ID != models.DryFoodID || foods[1].Amount != 80 {
		t.Errorf("dry food entry = %+v", foods[1])
	}
	if foods[2].ID != models.SupplementID || foods[2].Amount != 2 {
		t.Errorf("supplement entry = %+v", foods[2])
	}

	s = mustReduce(t, s, Action{Type: ActionSetFeedingMode, Mode: "whatever"})
	if s.FeedingMode != models.FeedingHomemade {
		t.Fatalf("feeding mode = %q, want homemade fallback", s.FeedingMode)
	}
	if foods := s.DietFoods(); len(foods) != 2 {
		t.Fatalf("homemade diet foods = %d, want 2 (dry food excluded)", len(foods))
	}
}

func TestReduceUnknownAction(t *testing.T) {
	if _, err := Reduce(New(), Action{Type: "teleport"}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}

func TestReduceDryFoodAndSupplementSteps(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		actions []ActionType
		dry     bool
		want    float64
	}{
		{name: "dry food up", start: 0, actions: []ActionType{ActionIncrementDryFood, ActionIncrementDryFood}, dry: true, want: 20},
		{name: "dry food down", start: 35, actions: []ActionType{ActionDecrementDryFood}, dry: true, want: 25},
		{name: "dry food floor", start: 5, actions: []ActionType{ActionDecrementDryFood, ActionDecrementDryFood}, dry: true, want: 0},
		{name: "supplement up", start: 2, actions: []ActionType{ActionIncrementSupplement}, want: 12},
		{name: "supplement floor", start: 0, actions: []ActionType{ActionDecrementSupplement}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if tt.dry {
				s.DryFoodAmount = tt.start
			} else {
				s.SupplementAmount = tt.start
			}
			for _, a := range tt.actions {
				s = mustReduce(t, s, Action{Type: a})
			}

			got := s.SupplementAmount
			if tt.dry {
				got = s.DryFoodAmount
			}
			if got != tt.want {
				t.Errorf("amount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReduceDryFoodStepDoesNotMutateInput(t *testing.T) {
	s := New()
	s.DryFoodAmount = 40
	next := mustReduce(t, s, Action{Type: ActionIncrementDryFood})
	if s.DryFoodAmount != 40 || next.DryFoodAmount != 50 {
		t.Fatalf("input %v / next %v, want 40 / 50", s.DryFoodAmount, next.DryFoodAmount)
	}
}
