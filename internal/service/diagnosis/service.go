package diagnosis

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/catalog"
	"github.com/mamadbah2/inumeshi/internal/domain/models"
	"github.com/mamadbah2/inumeshi/internal/nutrition"
	"github.com/mamadbah2/inumeshi/internal/service/telemetry"
	"github.com/mamadbah2/inumeshi/internal/state"
)

// Recorder receives calculation logs. *telemetry.Dispatcher satisfies it.
type Recorder interface {
	Dispatch(rec telemetry.Record)
}

// Result is the outcome of applying one action.
type Result struct {
	State        state.State            `json:"state"`
	Diagnosis    *nutrition.Diagnosis   `json:"diagnosis,omitempty"`
	FoodCalories []nutrition.FoodEnergy `json:"foodCalories"`
	Profile      state.ProfileProgress  `json:"profile"`
}

// Service runs calculator actions against the active catalog.
type Service struct {
	catalog  *catalog.Store
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires the diagnosis service. recorder may be nil.
func NewService(catalogStore *catalog.Store, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  catalogStore,
		recorder: recorder,
		now:      time.Now,
		logger:   logger,
	}
}

// Diagnose evaluates the state's diet against the standards of its feeding
// mode. Foods are re-read from the catalog by id, so only ids and amounts
// are taken from the caller.
func (s *Service) Diagnose(st state.State) (nutrition.Diagnosis, error) {
	cat := s.catalog.Current()
	st, err := catalogFoods(cat, st)
	if err != nil {
		return nutrition.Diagnosis{}, err
	}
	return diagnose(cat, st), nil
}

// Apply reduces action into st. Posted foods and an added ingredient are
// replaced by their catalog entries first. A diagnosis is attached once the
// caregiver has asked for one; a calculate action is logged after that
// diagnosis is built.
func (s *Service) Apply(st state.State, action state.Action) (Result, error) {
	cat := s.catalog.Current()

	current, err := catalogFoods(cat, st)
	if err != nil {
		return Result{State: st}, err
	}
	if err := resolveIngredient(cat, &action); err != nil {
		return Result{State: st}, err
	}

	var calculated *state.State
	store := state.NewStore(current)
	unsubscribe := store.Subscribe(func(_, next state.State) {
		if action.Type == state.ActionCalculate {
			calculated = &next
		}
	})
	defer unsubscribe()

	next, err := store.Dispatch(action)
	if err != nil {
		return Result{State: next}, err
	}

	result := Result{
		State:        next,
		FoodCalories: nutrition.FoodCalories(next.DietFoods()),
		Profile:      state.ProfileProgressOf(next.Profile),
	}
	if next.Calculated {
		d := diagnose(cat, next)
		result.Diagnosis = &d
	}

	if calculated != nil {
		s.record(*calculated, result.Diagnosis)
	}
	return result, nil
}

func diagnose(cat *catalog.Catalog, st state.State) nutrition.Diagnosis {
	d := nutrition.Diagnose(st.Profile, st.DietFoods(), cat.Standards(st.FeedingMode))
	for i := range d.Sections {
		for j := range d.Sections[i].Nutrients {
			n := &d.Sections[i].Nutrients[j]
			if n.Status == nutrition.StatusDeficiency {
				n.Recommendations = cat.RecommendedFor(n.ID)
			}
		}
	}
	return d
}

// catalogFoods rebuilds every selected food from its catalog entry, keeping
// the amount. Unknown ids are rejected.
func catalogFoods(cat *catalog.Catalog, st state.State) (state.State, error) {
	out := st.Clone()
	for i, food := range st.Foods {
		ingredient, err := cat.Ingredient(food.ID)
		if err != nil {
			return st, fmt.Errorf("food %d: %w", i, err)
		}
		out.Foods[i] = models.SelectedFood{Ingredient: ingredient, Amount: food.Amount}
	}
	return out, nil
}

func resolveIngredient(cat *catalog.Catalog, action *state.Action) error {
	if action.Type != state.ActionAddFood || action.Ingredient == nil {
		return nil
	}
	if action.Ingredient.IsTemplate() {
		return fmt.Errorf("%w: %s", catalog.ErrIngredientNotFound, action.Ingredient.ID)
	}

	ingredient, err := cat.Ingredient(action.Ingredient.ID)
	if err != nil {
		return err
	}
	action.Ingredient = &ingredient
	return nil
}

func (s *Service) record(st state.State, d *nutrition.Diagnosis) {
	if s.recorder == nil || d == nil {
		return
	}
	rec := telemetry.NewRecord(st, s.now())
	s.recorder.Dispatch(rec)
	s.logger.Debug("calculation queued for telemetry",
		zap.String("record_id", rec.ID),
		zap.Int("foods", len(rec.Foods)),
		zap.Int("kcal", d.Calories.Intake),
	)
}
