package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/width"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// DefaultSearchLimit caps the number of suggestions returned by Search.
const DefaultSearchLimit = 10

// Search returns ingredients whose name or kana contains query. Entries whose
// primary reading starts with the query come first, then those whose name or
// another reading starts with it, then plain substring matches.
func (c *Catalog) Search(query string, limit int) []models.Ingredient {
	q := normalize(query)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	type hit struct {
		ingredient models.Ingredient
		priority   int
	}

	var hits []hit
	for _, ingredient := range c.ingredients {
		if priority, ok := matchPriority(ingredient, q); ok {
			hits = append(hits, hit{ingredient: ingredient, priority: priority})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].priority < hits[j].priority
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]models.Ingredient, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.ingredient)
	}
	return out
}

func matchPriority(ingredient models.Ingredient, q string) (int, bool) {
	name := normalize(ingredient.Name)
	kana := make([]string, len(ingredient.Kana))
	for i, k := range ingredient.Kana {
		kana[i] = normalize(k)
	}

	matched := strings.Contains(name, q)
	for _, k := range kana {
		if strings.Contains(k, q) {
			matched = true
		}
	}
	if !matched {
		return 0, false
	}

	if len(kana) > 0 && strings.HasPrefix(kana[0], q) {
		return 0, true
	}
	if strings.HasPrefix(name, q) {
		return 1, true
	}
	for _, k := range kana[min(1, len(kana)):] {
		if strings.HasPrefix(k, q) {
			return 1, true
		}
	}
	return 2, true
}

func normalize(s string) string {
	return width.Fold.String(strings.ToLower(strings.TrimSpace(s)))
}
