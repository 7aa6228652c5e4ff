package nutrition

import "math"

const (
	// NeutralDrawValue is returned when a standard has no usable minimum.
	NeutralDrawValue = 1.5
	// MaxDrawValue is the hard ceiling of every draw value.
	MaxDrawValue = 2.5

	optimalFloor       = 1.0
	optimalCeiling     = 2.0
	unboundedCeilingX  = 5.0
	barPercentPerPoint = 40.0
)

// Status is the classification shown next to each nutrient bar.
type Status string

const (
	StatusDeficiency Status = "deficiency"
	StatusOptimal    Status = "optimal"
	StatusExcess     Status = "excess"
)

// CalculateDrawValue maps an intake and its scaled range onto the 0.0-2.5
// balance score shared by every chart: below 1.0 is deficient, 1.0-2.0 is
// within range and above 2.0 exceeds the maximum.
func CalculateDrawValue(intake, adjustedMin float64, adjustedMax *float64) float64 {
	if adjustedMin <= 0 {
		return NeutralDrawValue
	}

	var val float64
	switch {
	case intake < adjustedMin:
		val = intake / adjustedMin
	case adjustedMax != nil:
		span := *adjustedMax - adjustedMin
		switch {
		case span > 0:
			val = optimalFloor + (intake-adjustedMin)/span
		case intake > *adjustedMax:
			val = MaxDrawValue
		default:
			val = optimalCeiling
		}
	default:
		if intake/adjustedMin >= unboundedCeilingX {
			val = optimalCeiling
		} else {
			val = optimalFloor + (intake-adjustedMin)/((unboundedCeilingX-1)*adjustedMin)
		}
	}

	val = math.Floor(val*100) / 100
	return math.Min(val, MaxDrawValue)
}

// Classify turns a draw value into a status. Nutrients without an upper bound
// are never reported as excess.
func Classify(drawValue float64, hasMax bool) Status {
	switch {
	case drawValue < optimalFloor:
		return StatusDeficiency
	case drawValue > optimalCeiling && hasMax:
		return StatusExcess
	default:
		return StatusOptimal
	}
}

// BarWidth converts a draw value into a bar length in percent. The minimum
// sits at 40% and the maximum at 80%.
func BarWidth(drawValue float64) float64 {
	return math.Min(drawValue*barPercentPerPoint, 100)
}
