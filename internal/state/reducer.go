package state

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

var (
	// ErrUnknownAction indicates the action type is not supported.
	ErrUnknownAction = errors.New("unknown action")
	// ErrFoodIndex indicates the action points at a food that does not exist.
	ErrFoodIndex = errors.New("food index out of range")
	// ErrInvalidAmount indicates an amount that is not a whole number of grams.
	ErrInvalidAmount = errors.New("amount must contain digits only")
	// ErrMissingIngredient indicates add_food was sent without an ingredient.
	ErrMissingIngredient = errors.New("ingredient is required")
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ActionType enumerates the state transitions.
type ActionType string

const (
	ActionSetProfile          ActionType = "set_profile"
	ActionAddFood             ActionType = "add_food"
	ActionSetAmount           ActionType = "set_amount"
	ActionIncrement           ActionType = "increment"
	ActionDecrement           ActionType = "decrement"
	ActionRemoveFood          ActionType = "remove_food"
	ActionSetFeedingMode      ActionType = "set_feeding_mode"
	ActionSetDryFoodAmount    ActionType = "set_dry_food_amount"
	ActionIncrementDryFood    ActionType = "increment_dry_food"
	ActionDecrementDryFood    ActionType = "decrement_dry_food"
	ActionSetSupplementAmount ActionType = "set_supplement_amount"
	ActionIncrementSupplement ActionType = "increment_supplement"
	ActionDecrementSupplement ActionType = "decrement_supplement"
	ActionCalculate           ActionType = "calculate"
)

// Action is one user interaction. Only the fields relevant to Type are read.
type Action struct {
	Type       ActionType         `json:"type" binding:"required"`
	Profile    *models.DogProfile `json:"profile,omitempty"`
	Ingredient *models.Ingredient `json:"ingredient,omitempty"`
	Index      int                `json:"index"`
	Value      string             `json:"value,omitempty"`
	Mode       models.FeedingMode `json:"mode,omitempty"`
}

// Reduce applies action to s and returns the next state. The input is never
// modified; on error the returned state equals the input.
func Reduce(s State, action Action) (State, error) {
	next := s.Clone()

	switch action.Type {
	case ActionSetProfile:
		if action.Profile != nil {
			next.Profile = cloneProfile(*action.Profile)
			next.Profile.Activity = models.ParseActivityLevel(string(next.Profile.Activity))
		}
	case ActionAddFood:
		if action.Ingredient == nil {
			return s, ErrMissingIngredient
		}
		next.Foods = append(next.Foods, models.SelectedFood{Ingredient: *action.Ingredient, Amount: models.DefaultFoodAmount})
	case ActionSetAmount:
		if err := checkIndex(next, action.Index); err != nil {
			return s, err
		}
		amount, err := ParseAmount(action.Value)
		if err != nil {
			return s, err
		}
		next.Foods[action.Index].Amount = amount
	case ActionIncrement:
		if err := checkIndex(next, action.Index); err != nil {
			return s, err
		}
		next.Foods[action.Index].Amount += models.AmountStep
	case ActionDecrement:
		if err := checkIndex(next, action.Index); err != nil {
			return s, err
		}
		next.Foods[action.Index].Amount = stepDown(next.Foods[action.Index].Amount)
	case ActionRemoveFood:
		if err := checkIndex(next, action.Index); err != nil {
			return s, err
		}
		next.Foods = append(next.Foods[:action.Index], next.Foods[action.Index+1:]...)
	case ActionSetFeedingMode:
		next.FeedingMode = models.ParseFeedingMode(string(action.Mode))
	case ActionSetDryFoodAmount:
		amount, err := ParseAmount(action.Value)
		if err != nil {
			return s, err
		}
		next.DryFoodAmount = amount
	case ActionIncrementDryFood:
		next.DryFoodAmount += models.AmountStep
	case ActionDecrementDryFood:
		next.DryFoodAmount = stepDown(next.DryFoodAmount)
	case ActionSetSupplementAmount:
		amount, err := ParseAmount(action.Value)
		if err != nil {
			return s, err
		}
		next.SupplementAmount = amount
	case ActionIncrementSupplement:
		next.SupplementAmount += models.AmountStep
	case ActionDecrementSupplement:
		next.SupplementAmount = stepDown(next.SupplementAmount)
	case ActionCalculate:
		next.Calculated = true
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	return next, nil
}

// ParseAmount reads a gram amount typed by the caregiver. Full-width digits
// are accepted, an empty value means zero and anything else but digits is
// rejected.
func ParseAmount(raw string) (float64, error) {
	normalized := strings.TrimSpace(width.Narrow.String(raw))
	if normalized == "" {
		return 0, nil
	}
	if !digitsOnly.MatchString(normalized) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}

func stepDown(amount float64) float64 {
	return math.Max(0, amount-models.AmountStep)
}

func checkIndex(s State, index int) error {
	if index < 0 || index >= len(s.Foods) {
		return fmt.Errorf("%w: %d", ErrFoodIndex, index)
	}
	return nil
}
