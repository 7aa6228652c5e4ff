package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	repo "github.com/mamadbah2/inumeshi/internal/repository/sheets"
)

const (
	dateLayout        = "2006-01-02"
	topIngredientsMax = 5
)

// IngredientCount is how many calculations included an ingredient.
type IngredientCount struct {
	Name  string
	Count int
}

// UsageSummary aggregates calculation logs over a window.
type UsageSummary struct {
	Start          time.Time
	End            time.Time
	Calculations   int
	Homemade       int
	Topping        int
	AverageWeight  float64
	TopIngredients []IngredientCount
}

// Service computes usage analytics from the calculation log spreadsheet.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// Summarize counts calculations whose timestamp falls within [start, end].
func (s *Service) Summarize(ctx context.Context, start, end time.Time) (UsageSummary, error) {
	rows, err := s.repo.ReadRange(ctx, repo.CalculationsRange)
	if err != nil {
		return UsageSummary{}, fmt.Errorf("load calculations range: %w", err)
	}

	summary := UsageSummary{Start: start, End: end}
	counts := make(map[string]int)
	var weightTotal float64
	var weighed int

	for i, row := range rows {
		record, err := repo.ParseCalculationRow(row)
		if err != nil {
			s.logger.Debug("skip calculation row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		if record.Timestamp.Before(start) || record.Timestamp.After(end) {
			continue
		}

		summary.Calculations++
		if record.FeedingType == "topping" {
			summary.Topping++
		} else {
			summary.Homemade++
		}
		if record.Weight != nil && *record.Weight > 0 {
			weightTotal += *record.Weight
			weighed++
		}

		// An ingredient counts once per calculation.
		seen := make(map[string]bool, len(record.Foods))
		for _, food := range record.Foods {
			name := strings.TrimSpace(food.Name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}

	if weighed > 0 {
		summary.AverageWeight = weightTotal / float64(weighed)
	}
	summary.TopIngredients = topIngredients(counts, topIngredientsMax)
	return summary, nil
}

// WeeklySummary renders Summarize as a one-line report.
func (s *Service) WeeklySummary(ctx context.Context, start, end time.Time) (string, error) {
	summary, err := s.Summarize(ctx, start, end)
	if err != nil {
		return "", err
	}
	return summary.String(), nil
}

func (u UsageSummary) String() string {
	period := fmt.Sprintf("%s-%s", u.Start.Format(dateLayout), u.End.Format(dateLayout))
	if u.Calculations == 0 {
		return fmt.Sprintf("Usage (%s): no calculations logged.", period)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Usage (%s): %d calculations (%d homemade, %d topping).", period, u.Calculations, u.Homemade, u.Topping)
	if u.AverageWeight > 0 {
		fmt.Fprintf(&b, " Average weight %.1f kg.", u.AverageWeight)
	}
	if len(u.TopIngredients) > 0 {
		parts := make([]string, len(u.TopIngredients))
		for i, ing := range u.TopIngredients {
			parts[i] = fmt.Sprintf("%s (%d)", ing.Name, ing.Count)
		}
		fmt.Fprintf(&b, " Top ingredients: %s.", strings.Join(parts, ", "))
	}
	return b.String()
}

func topIngredients(counts map[string]int, limit int) []IngredientCount {
	out := make([]IngredientCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, IngredientCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// LastWeek returns the seven days ending at now.
func LastWeek(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -7), now
}
