package models

import "strings"

// FeedingMode selects which nutrient standard table applies.
type FeedingMode string

const (
	// FeedingHomemade means the dog eats homemade food exclusively.
	FeedingHomemade FeedingMode = "homemade"
	// FeedingTopping means homemade food is added on top of a complete
	// commercial diet.
	FeedingTopping FeedingMode = "topping"
)

// ParseFeedingMode falls back to FeedingHomemade for unknown values.
func ParseFeedingMode(value string) FeedingMode {
	if FeedingMode(strings.ToLower(strings.TrimSpace(value))) == FeedingTopping {
		return FeedingTopping
	}
	return FeedingHomemade
}

// NutrientStandard is a reference range per 100 g of diet. A nil Max means no
// known upper bound.
type NutrientStandard struct {
	ID   NutrientID `json:"id"`
	Name string     `json:"name"`
	Unit string     `json:"unit"`
	Min  float64    `json:"min"`
	Max  *float64   `json:"max"`
}

// HasMax reports whether the standard defines an upper bound. A zero max is
// treated as undefined.
func (s NutrientStandard) HasMax() bool {
	return s.Max != nil && *s.Max != 0
}

// StandardSection groups standards for display (macronutrients, vitamins...).
type StandardSection struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Nutrients []NutrientStandard `json:"nutrients"`
}

// StandardsMeta describes where a standards table comes from.
type StandardsMeta struct {
	Source    string `json:"source"`
	UnitBasis string `json:"unit_basis"`
}

// StandardsDocument is one complete standards table.
type StandardsDocument struct {
	Meta     StandardsMeta     `json:"meta"`
	Sections []StandardSection `json:"sections"`
}

// All flattens every section into a single list, preserving order.
func (d StandardsDocument) All() []NutrientStandard {
	var out []NutrientStandard
	for _, section := range d.Sections {
		out = append(out, section.Nutrients...)
	}
	return out
}
