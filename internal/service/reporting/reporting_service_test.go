package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeRepo struct {
	rows [][]interface{}
	err  error
}

func (f *fakeRepo) WriteRow(context.Context, string, []interface{}) error { return nil }

func (f *fakeRepo) ReadRange(context.Context, string) ([][]interface{}, error) {
	return f.rows, f.err
}

func calcRow(ts, feeding, weight, foods string) []interface{} {
	return []interface{}{ts, "id", "dog", "", weight, "normal", feeding, "0", foods}
}

func TestSummarize(t *testing.T) {
	rows := [][]interface{}{
		{"timestamp", "id", "name", "age", "weight", "activity", "feedingType", "dryFoodAmount", "foods"},
		calcRow("2024-05-01T10:00:00Z", "homemade", "10", `[{"name":"鶏むね肉","amount":100},{"name":"にんじん","amount":20}]`),
		calcRow("2024-05-02T10:00:00Z", "topping", "6", `[{"name":"鶏むね肉","amount":50},{"name":"鶏むね肉","amount":30}]`),
		calcRow("2024-05-03T10:00:00Z", "homemade", "", `[{"name":"かぼちゃ","amount":40}]`),
		calcRow("2024-04-01T10:00:00Z", "homemade", "30", `[{"name":"鮭","amount":40}]`),
		calcRow("not-a-date", "homemade", "5", `[]`),
		calcRow("2024-05-04T10:00:00Z", "homemade", "5", `{broken`),
	}
	svc := NewService(&fakeRepo{rows: rows}, nil)

	start := time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	got, err := svc.Summarize(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if got.Calculations != 3 || got.Homemade != 2 || got.Topping != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", got.Calculations, got.Homemade, got.Topping)
	}
	if got.AverageWeight != 8 {
		t.Errorf("average weight = %v, want 8", got.AverageWeight)
	}
	want := []IngredientCount{{"鶏むね肉", 2}, {"かぼちゃ", 1}, {"にんじん", 1}}
	if len(got.TopIngredients) != len(want) {
		t.Fatalf("top ingredients = %v, want %v", got.TopIngredients, want)
	}
	for i := range want {
		if got.TopIngredients[i] != want[i] {
			t.Errorf("top[%d] = %v, want %v", i, got.TopIngredients[i], want[i])
		}
	}

	line := got.String()
	for _, fragment := range []string{"2024-04-28-2024-05-05", "3 calculations", "鶏むね肉 (2)", "Average weight 8.0 kg"} {
		if !strings.Contains(line, fragment) {
			t.Errorf("summary %q missing %q", line, fragment)
		}
	}
}

func TestWeeklySummaryEmpty(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	start, end := LastWeek(time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC))
	line, err := svc.WeeklySummary(context.Background(), start, end)
	if err != nil {
		t.Fatalf("WeeklySummary: %v", err)
	}
	if line != "Usage (2024-05-03-2024-05-10): no calculations logged." {
		t.Errorf("summary = %q", line)
	}
}

func TestWeeklySummaryReadError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("quota")}, nil)
	if _, err := svc.WeeklySummary(context.Background(), time.Time{}, time.Now()); err == nil {
		t.Fatal("expected error")
	}
}

func TestTopIngredientsLimit(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 6, "c": 3, "d": 3, "e": 2, "f": 9}
	got := topIngredients(counts, 3)
	want := []string{"f", "b", "c"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("top = %v, want names %v", got, want)
		}
	}
}
