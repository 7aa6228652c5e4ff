package models

import "strings"

// ActivityLevel describes how active the dog is day to day.
type ActivityLevel string

const (
	ActivityUnset  ActivityLevel = ""
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

// ParseActivityLevel maps free-form input onto a known level. Anything else
// yields ActivityUnset.
func ParseActivityLevel(value string) ActivityLevel {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(value))) {
	case ActivityLow:
		return ActivityLow
	case ActivityNormal:
		return ActivityNormal
	case ActivityHigh:
		return ActivityHigh
	default:
		return ActivityUnset
	}
}

// DogProfile is the caregiver-entered description of the dog. Age (years) and
// Weight (kg) are nil until entered.
type DogProfile struct {
	Name     string        `json:"name"`
	Age      *float64      `json:"age"`
	Weight   *float64      `json:"weight"`
	Activity ActivityLevel `json:"activity"`
}

// Float returns a pointer to v, convenient for building profiles.
func Float(v float64) *float64 {
	return &v
}
