package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
	"github.com/mamadbah2/inumeshi/internal/state"
)

// Record is the anonymous calculation log sent to every sink.
type Record = models.CalculationLog

// NewRecord snapshots the calculator state. The dry food and supplement
// templates are not caregiver choices and are left out of Foods.
func NewRecord(st state.State, now time.Time) Record {
	rec := Record{
		ID:          uuid.NewString(),
		Timestamp:   now.UTC(),
		Name:        st.Profile.Name,
		Age:         copyFloat(st.Profile.Age),
		Weight:      copyFloat(st.Profile.Weight),
		Activity:    string(st.Profile.Activity),
		FeedingType: string(st.FeedingMode),
		Foods:       make([]models.FoodLog, 0, len(st.Foods)),
	}
	if st.FeedingMode == models.FeedingTopping {
		rec.DryFoodAmount = st.DryFoodAmount
	}

	for _, food := range st.Foods {
		if food.IsTemplate() {
			continue
		}
		rec.Foods = append(rec.Foods, models.FoodLog{Name: food.Name, Amount: food.Amount})
	}

	return rec
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Float(*v)
}
