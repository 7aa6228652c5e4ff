package nutrition

import "github.com/mamadbah2/inumeshi/internal/domain/models"

// ScaledStandard is a standard converted to absolute thresholds for a given
// diet weight. AdjustedMax is nil when the standard has no upper bound.
type ScaledStandard struct {
	AdjustedMin float64  `json:"adjustedMin"`
	AdjustedMax *float64 `json:"adjustedMax"`
}

// ScaleStandard converts a per-100 g standard into thresholds sized to
// totalWeightGrams of diet.
func ScaleStandard(standard models.NutrientStandard, totalWeightGrams float64) ScaledStandard {
	if totalWeightGrams <= 0 {
		scaled := ScaledStandard{}
		if standard.HasMax() {
			zero := 0.0
			scaled.AdjustedMax = &zero
		}
		return scaled
	}

	ratio := totalWeightGrams / 100
	scaled := ScaledStandard{AdjustedMin: standard.Min * ratio}
	if standard.HasMax() {
		adjustedMax := *standard.Max * ratio
		scaled.AdjustedMax = &adjustedMax
	}
	return scaled
}
