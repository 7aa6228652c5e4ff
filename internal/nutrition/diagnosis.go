package nutrition

import (
	"math"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

var sectionOrder = []string{"macronutrients", "vitamins", "minerals"}

// CalorieSummary compares the energy supplied against the requirement.
type CalorieSummary struct {
	Intake      int  `json:"intake"`
	Requirement int  `json:"requirement"`
	Percent     int  `json:"percent"`
	Computable  bool `json:"computable"`
}

// NutrientResult is one evaluated nutrient, ready for a bar renderer.
type NutrientResult struct {
	ID          models.NutrientID `json:"id"`
	Name        string            `json:"name"`
	Unit        string            `json:"unit"`
	Intake      float64           `json:"intake"`
	AdjustedMin float64           `json:"adjustedMin"`
	AdjustedMax *float64          `json:"adjustedMax"`
	DrawValue   float64           `json:"drawValue"`
	Status      Status            `json:"status"`
	BarWidth    float64           `json:"barWidth"`

	// Recommendations is filled by callers holding a recommendation table,
	// for deficient nutrients only.
	Recommendations []string `json:"recommendations,omitempty"`
}

// RadarPoint is one spoke of a section radar chart.
type RadarPoint struct {
	Subject string  `json:"subject"`
	Value   float64 `json:"value"`
}

// SectionResult groups evaluated nutrients the way the standards table does.
type SectionResult struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Nutrients []NutrientResult `json:"nutrients"`
	Radar     []RadarPoint     `json:"radar"`
}

// Diagnosis is the full evaluation of a diet against a standards table.
type Diagnosis struct {
	Calories        CalorieSummary  `json:"calories"`
	TotalWeight     float64         `json:"totalWeight"`
	DryMatterWeight float64         `json:"dryMatterWeight"`
	MoisturePercent float64         `json:"moisturePercent"`
	Sections        []SectionResult `json:"sections"`
}

// Diagnose evaluates the foods for the given dog against standards.
func Diagnose(profile models.DogProfile, foods []models.SelectedFood, standards models.StandardsDocument) Diagnosis {
	der := CalculateDER(profile)
	totals := Aggregate(foods)

	diagnosis := Diagnosis{
		Calories: CalorieSummary{
			Intake:      totals.RoundedCalories(),
			Requirement: der,
			Computable:  der > 0,
		},
		TotalWeight:     totals.Weight,
		DryMatterWeight: totals.DryMatterWeight(),
		MoisturePercent: totals.DisplayIntake(models.NutrientMoisture),
	}
	if der > 0 {
		diagnosis.Calories.Percent = int(math.Round(totals.Calories / float64(der) * 100))
	}

	for _, section := range orderSections(standards.Sections) {
		result := SectionResult{ID: section.ID, Name: section.Name}
		for _, std := range section.Nutrients {
			nutrient := EvaluateNutrient(std, totals)
			result.Nutrients = append(result.Nutrients, nutrient)
			result.Radar = append(result.Radar, RadarPoint{
				Subject: nutrient.Name,
				Value:   math.Min(nutrient.DrawValue, MaxDrawValue),
			})
		}
		diagnosis.Sections = append(diagnosis.Sections, result)
	}

	return diagnosis
}

// EvaluateNutrient scores a single standard against aggregated totals.
func EvaluateNutrient(std models.NutrientStandard, totals Totals) NutrientResult {
	intake := totals.DisplayIntake(std.ID)
	scaled := ScaleStandard(std, totals.Weight)
	drawValue := CalculateDrawValue(intake, scaled.AdjustedMin, scaled.AdjustedMax)

	return NutrientResult{
		ID:          std.ID,
		Name:        std.Name,
		Unit:        std.Unit,
		Intake:      intake,
		AdjustedMin: scaled.AdjustedMin,
		AdjustedMax: scaled.AdjustedMax,
		DrawValue:   drawValue,
		Status:      Classify(drawValue, scaled.AdjustedMax != nil),
		BarWidth:    BarWidth(drawValue),
	}
}

// orderSections puts the known sections first in display order and keeps any
// other section afterwards in document order.
func orderSections(sections []models.StandardSection) []models.StandardSection {
	ordered := make([]models.StandardSection, 0, len(sections))
	for _, id := range sectionOrder {
		for _, section := range sections {
			if section.ID == id {
				ordered = append(ordered, section)
			}
		}
	}
	for _, section := range sections {
		if !isOrderedSection(section.ID) {
			ordered = append(ordered, section)
		}
	}
	return ordered
}

func isOrderedSection(id string) bool {
	for _, known := range sectionOrder {
		if known == id {
			return true
		}
	}
	return false
}
