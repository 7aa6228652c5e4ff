package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/inumeshi/internal/catalog"
	"github.com/mamadbah2/inumeshi/internal/domain/models"
	"github.com/mamadbah2/inumeshi/internal/nutrition"
	"github.com/mamadbah2/inumeshi/internal/service/diagnosis"
	"github.com/mamadbah2/inumeshi/internal/service/telemetry"
	"github.com/mamadbah2/inumeshi/internal/state"
)

type countingRecorder struct {
	count int
}

func (r *countingRecorder) Dispatch(telemetry.Record) { r.count++ }

func setupEngine(t *testing.T) (*gin.Engine, *countingRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load("", nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	store := catalog.NewStaticStore(cat)
	recorder := &countingRecorder{}
	h := NewCalculatorHandler(store, diagnosis.NewService(store, recorder, nil), nil)

	r := gin.New()
	r.GET("/ingredients", h.SearchIngredients)
	r.GET("/ingredients/:id", h.GetIngredient)
	r.GET("/standards", h.GetStandards)
	r.GET("/templates", h.GetTemplates)
	r.GET("/recommendations", h.GetRecommendations)
	r.POST("/diagnosis", h.Diagnose)
	r.POST("/actions", h.ApplyAction)
	return r, recorder
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchIngredients(t *testing.T) {
	r, _ := setupEngine(t)

	tests := []struct {
		name      string
		path      string
		status    int
		wantCount int
		firstID   string
	}{
		{name: "empty query lists catalog", path: "/ingredients?limit=3", status: http.StatusOK, wantCount: 3, firstID: "chicken-breast"},
		{name: "kana search", path: "/ingredients?q=" + url.QueryEscape("ささみ"), status: http.StatusOK, wantCount: 1, firstID: "chicken-tender"},
		{name: "no match", path: "/ingredients?q=zzz", status: http.StatusOK, wantCount: 0},
		{name: "bad limit", path: "/ingredients?limit=-1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp struct {
				Ingredients []models.Ingredient `json:"ingredients"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Ingredients) != tt.wantCount {
				t.Fatalf("got %d ingredients, want %d", len(resp.Ingredients), tt.wantCount)
			}
			if tt.firstID != "" && resp.Ingredients[0].ID != tt.firstID {
				t.Errorf("first = %s, want %s", resp.Ingredients[0].ID, tt.firstID)
			}
		})
	}
}

func TestGetIngredient(t *testing.T) {
	r, _ := setupEngine(t)

	if w := do(r, http.MethodGet, "/ingredients/salmon", nil); w.Code != http.StatusOK {
		t.Errorf("salmon status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/ingredients/unicorn", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestGetStandardsAndTemplates(t *testing.T) {
	r, _ := setupEngine(t)

	w := do(r, http.MethodGet, "/standards?mode=topping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("standards status = %d", w.Code)
	}
	var doc models.StandardsDocument
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode standards: %v", err)
	}
	if len(doc.Sections) != 3 {
		t.Errorf("sections = %d, want 3", len(doc.Sections))
	}

	w = do(r, http.MethodGet, "/templates", nil)
	var tpl templatesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tpl); err != nil {
		t.Fatalf("decode templates: %v", err)
	}
	if tpl.DryFood.ID != models.DryFoodID || tpl.Supplement.ID != models.SupplementID {
		t.Errorf("templates = %s/%s", tpl.DryFood.ID, tpl.Supplement.ID)
	}
}

func TestDiagnose(t *testing.T) {
	r, recorder := setupEngine(t)

	st := state.New()
	st.Profile = models.DogProfile{Age: models.Float(3), Weight: models.Float(10), Activity: models.ActivityNormal}
	w := do(r, http.MethodPost, "/diagnosis", diagnosisRequest{State: st})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var d nutrition.Diagnosis
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Calories.Requirement != 512 || d.Calories.Intake != 0 {
		t.Errorf("calories = %+v", d.Calories)
	}
	if recorder.count != 0 {
		t.Error("diagnosis endpoint produced telemetry")
	}

	if w := do(r, http.MethodPost, "/diagnosis", nil); w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", w.Code)
	}
}

func TestDiagnoseUsesCatalogValues(t *testing.T) {
	r, _ := setupEngine(t)

	body := map[string]any{"state": map[string]any{
		"foods": []map[string]any{{"id": "chicken-breast", "calories": 99999, "amount": 100}},
	}}
	w := do(r, http.MethodPost, "/diagnosis", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var d nutrition.Diagnosis
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Calories.Intake != 105 {
		t.Errorf("intake = %d kcal, want 105", d.Calories.Intake)
	}

	body = map[string]any{"state": map[string]any{
		"foods": []map[string]any{{"id": "unicorn", "calories": 10, "amount": 100}},
	}}
	if w := do(r, http.MethodPost, "/diagnosis", body); w.Code != http.StatusBadRequest {
		t.Errorf("unknown food status = %d, want 400", w.Code)
	}
}

func TestGetRecommendations(t *testing.T) {
	r, _ := setupEngine(t)

	w := do(r, http.MethodGet, "/recommendations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Sections []models.RecommendationSection `json:"sections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sections) != 3 || len(resp.Sections[0].Items) == 0 {
		t.Fatalf("sections = %+v", resp.Sections)
	}
	if first := resp.Sections[0].Items[0]; first.Nutrient != models.NutrientProtein {
		t.Errorf("first item = %+v, want protein", first)
	}
}

func TestApplyAction(t *testing.T) {
	r, recorder := setupEngine(t)

	body := map[string]any{
		"state":  state.New(),
		"action": map[string]any{"type": "add_food", "ingredient": map[string]any{"id": "egg"}},
	}
	w := do(r, http.MethodPost, "/actions", body)
	if w.Code != http.StatusOK {
		t.Fatalf("add_food status = %d (%s)", w.Code, w.Body.String())
	}
	var res diagnosis.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.State.Foods) != 1 || res.State.Foods[0].ID != "egg" || res.Diagnosis != nil {
		t.Fatalf("result = %+v", res)
	}
	if len(res.FoodCalories) != 1 || res.FoodCalories[0].Calories != 13 {
		t.Errorf("food calories = %+v, want egg at 13 kcal", res.FoodCalories)
	}
	if len(res.Profile.Unlocked) != 1 || res.Profile.Unlocked[0] != "name" {
		t.Errorf("profile progress = %+v", res.Profile)
	}

	w = do(r, http.MethodPost, "/actions", map[string]any{"state": res.State, "action": map[string]any{"type": "calculate"}})
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || res.Diagnosis == nil || !res.State.Calculated {
		t.Fatalf("calculate status = %d, result = %+v", w.Code, res)
	}
	if recorder.count != 1 {
		t.Errorf("telemetry count = %d, want 1", recorder.count)
	}

	rejected := []map[string]any{
		{"state": res.State, "action": map[string]any{"type": "set_amount", "index": 0, "value": "abc"}},
		{"state": res.State, "action": map[string]any{"type": "remove_food", "index": 4}},
		{"state": res.State, "action": map[string]any{"type": "fly"}},
		{"state": res.State, "action": map[string]any{"type": "add_food", "ingredient": map[string]any{"id": "unicorn"}}},
		{"state": map[string]any{"foods": []map[string]any{{"id": "unicorn", "amount": 10}}}, "action": map[string]any{"type": "calculate"}},
		{"state": res.State},
	}
	for i, body := range rejected {
		if w := do(r, http.MethodPost, "/actions", body); w.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400 (%s)", i, w.Code, w.Body.String())
		}
	}
}
