package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

//go:embed data/*.json
var embedded embed.FS

const (
	ingredientsFile       = "ingredients.json"
	homemadeStandardsFile = "standards_homemade.json"
	toppingStandardsFile  = "standards_topping.json"
	recommendationsFile   = "recommendations.json"
)

// ErrIngredientNotFound indicates the requested ingredient id is not in the catalog.
var ErrIngredientNotFound = errors.New("ingredient not found")

// Catalog is the immutable reference data: ingredients and both standards
// tables.
type Catalog struct {
	ingredients []models.Ingredient
	byID        map[string]int
	standards   map[models.FeedingMode]models.StandardsDocument

	recommendations []models.RecommendationSection
	recommendedFor  map[models.NutrientID][]string
}

// Load reads the catalog from dir, or from the bundled data when dir is empty.
func Load(dir string, logger *zap.Logger) (*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, fmt.Errorf("open bundled catalog: %w", err)
		}
		return LoadFS(sub, logger)
	}
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS reads the catalog files from fsys.
func LoadFS(fsys fs.FS, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var ingredients []models.Ingredient
	if err := readJSON(fsys, ingredientsFile, &ingredients); err != nil {
		return nil, err
	}

	cat := &Catalog{
		ingredients: make([]models.Ingredient, 0, len(ingredients)),
		byID:        make(map[string]int, len(ingredients)),
		standards:   make(map[models.FeedingMode]models.StandardsDocument, 2),
	}

	for _, ingredient := range ingredients {
		if strings.TrimSpace(ingredient.ID) == "" {
			return nil, fmt.Errorf("%s: ingredient %q has no id", ingredientsFile, ingredient.Name)
		}
		if _, dup := cat.byID[ingredient.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate ingredient id %q", ingredientsFile, ingredient.ID)
		}

		for id := range ingredient.Nutrients {
			if !id.Known() {
				logger.Debug("dropping unknown nutrient key", zap.String("ingredient", ingredient.ID), zap.String("nutrient", string(id)))
				delete(ingredient.Nutrients, id)
			}
		}

		cat.byID[ingredient.ID] = len(cat.ingredients)
		cat.ingredients = append(cat.ingredients, ingredient)
	}

	for mode, file := range map[models.FeedingMode]string{
		models.FeedingHomemade: homemadeStandardsFile,
		models.FeedingTopping:  toppingStandardsFile,
	} {
		var doc models.StandardsDocument
		if err := readJSON(fsys, file, &doc); err != nil {
			return nil, err
		}
		cat.standards[mode] = filterStandards(doc, file, logger)
	}

	if err := cat.loadRecommendations(fsys, logger); err != nil {
		return nil, err
	}

	logger.Debug("catalog loaded", zap.Int("ingredients", len(cat.ingredients)))
	return cat, nil
}

// Ingredients returns every catalog entry in catalog order.
func (c *Catalog) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, len(c.ingredients))
	copy(out, c.ingredients)
	return out
}

// Ingredient looks an entry up by id.
func (c *Catalog) Ingredient(id string) (models.Ingredient, error) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Ingredient{}, fmt.Errorf("%w: %s", ErrIngredientNotFound, id)
	}
	return c.ingredients[idx], nil
}

// Standards returns the table for the feeding mode, defaulting to homemade.
func (c *Catalog) Standards(mode models.FeedingMode) models.StandardsDocument {
	if doc, ok := c.standards[mode]; ok {
		return doc
	}
	return c.standards[models.FeedingHomemade]
}

// Recommendations returns the recommended-ingredient sections.
func (c *Catalog) Recommendations() []models.RecommendationSection {
	out := make([]models.RecommendationSection, len(c.recommendations))
	copy(out, c.recommendations)
	return out
}

// RecommendedFor lists foods rich in the nutrient, nil when none are known.
func (c *Catalog) RecommendedFor(id models.NutrientID) []string {
	foods := c.recommendedFor[id]
	if len(foods) == 0 {
		return nil
	}
	out := make([]string, len(foods))
	copy(out, foods)
	return out
}

// loadRecommendations reads the optional recommendations file. Override
// directories may omit it.
func (c *Catalog) loadRecommendations(fsys fs.FS, logger *zap.Logger) error {
	c.recommendedFor = make(map[models.NutrientID][]string)

	var sections []models.RecommendationSection
	if err := readJSON(fsys, recommendationsFile, &sections); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no recommendations file", zap.String("file", recommendationsFile))
			return nil
		}
		return err
	}

	for _, section := range sections {
		kept := models.RecommendationSection{ID: section.ID, Name: section.Name}
		for _, item := range section.Items {
			if !item.Nutrient.Known() {
				logger.Debug("dropping unknown recommendation", zap.String("nutrient", string(item.Nutrient)))
				continue
			}
			kept.Items = append(kept.Items, item)
			c.recommendedFor[item.Nutrient] = append(c.recommendedFor[item.Nutrient], item.Foods...)
		}
		c.recommendations = append(c.recommendations, kept)
	}
	return nil
}

func filterStandards(doc models.StandardsDocument, file string, logger *zap.Logger) models.StandardsDocument {
	out := models.StandardsDocument{Meta: doc.Meta}
	for _, section := range doc.Sections {
		kept := models.StandardSection{ID: section.ID, Name: section.Name}
		for _, std := range section.Nutrients {
			if !std.ID.Known() {
				logger.Debug("dropping unknown standard", zap.String("file", file), zap.String("nutrient", string(std.ID)))
				continue
			}
			kept.Nutrients = append(kept.Nutrients, std)
		}
		out.Sections = append(out.Sections, kept)
	}
	return out
}

func readJSON(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
