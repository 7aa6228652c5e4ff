package state

import (
	"strings"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// ProfileStep is one field of the step-by-step profile form.
type ProfileStep int

const (
	StepName ProfileStep = iota
	StepAge
	StepWeight
	StepActivity
)

// ProfileStepCompleted reports whether the field for step has a value.
func ProfileStepCompleted(p models.DogProfile, step ProfileStep) bool {
	switch step {
	case StepName:
		return strings.TrimSpace(p.Name) != ""
	case StepAge:
		return p.Age != nil
	case StepWeight:
		return p.Weight != nil
	case StepActivity:
		return p.Activity != models.ActivityUnset
	default:
		return false
	}
}

// ProfileStepUnlocked reports whether the form lets the caregiver edit step.
// Each step opens once every previous one has a value.
func ProfileStepUnlocked(p models.DogProfile, step ProfileStep) bool {
	if step < StepName || step > StepActivity {
		return false
	}
	for prev := StepName; prev < step; prev++ {
		if !ProfileStepCompleted(p, prev) {
			return false
		}
	}
	return true
}

var profileStepNames = [...]string{
	StepName:     "name",
	StepAge:      "age",
	StepWeight:   "weight",
	StepActivity: "activity",
}

func (s ProfileStep) String() string {
	if s < StepName || s > StepActivity {
		return "unknown"
	}
	return profileStepNames[s]
}

// ProfileProgress tells the form which fields are filled and which are open.
type ProfileProgress struct {
	Completed []string `json:"completed"`
	Unlocked  []string `json:"unlocked"`
}

// ProfileProgressOf evaluates every step of the profile form.
func ProfileProgressOf(p models.DogProfile) ProfileProgress {
	progress := ProfileProgress{Completed: []string{}, Unlocked: []string{}}
	for step := StepName; step <= StepActivity; step++ {
		if ProfileStepCompleted(p, step) {
			progress.Completed = append(progress.Completed, step.String())
		}
		if ProfileStepUnlocked(p, step) {
			progress.Unlocked = append(progress.Unlocked, step.String())
		}
	}
	return progress
}
