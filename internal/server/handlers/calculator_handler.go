package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/catalog"
	"github.com/mamadbah2/inumeshi/internal/domain/models"
	"github.com/mamadbah2/inumeshi/internal/service/diagnosis"
	"github.com/mamadbah2/inumeshi/internal/state"
)

const maxSearchLimit = 50

// CalculatorHandler exposes the catalog and the calculator over HTTP.
type CalculatorHandler struct {
	catalog *catalog.Store
	svc     *diagnosis.Service
	logger  *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(catalogStore *catalog.Store, svc *diagnosis.Service, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{catalog: catalogStore, svc: svc, logger: logger}
}

type diagnosisRequest struct {
	State state.State `json:"state"`
}

type actionRequest struct {
	State  state.State  `json:"state"`
	Action state.Action `json:"action"`
}

type templatesResponse struct {
	DryFood    models.Ingredient `json:"dryFood"`
	Supplement models.Ingredient `json:"supplement"`
}

// SearchIngredients lists catalog entries matching ?q=, all of them when q is
// empty.
func (h *CalculatorHandler) SearchIngredients(c *gin.Context) {
	limit := catalog.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxSearchLimit)
	}

	cat := h.catalog.Current()
	query := c.Query("q")
	if query == "" {
		ingredients := cat.Ingredients()
		if len(ingredients) > limit {
			ingredients = ingredients[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": cat.Search(query, limit)})
}

// GetIngredient returns one catalog entry.
func (h *CalculatorHandler) GetIngredient(c *gin.Context) {
	ingredient, err := h.catalog.Current().Ingredient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// GetStandards returns the standards table for ?mode=, homemade by default.
func (h *CalculatorHandler) GetStandards(c *gin.Context) {
	mode := models.ParseFeedingMode(c.Query("mode"))
	c.JSON(http.StatusOK, h.catalog.Current().Standards(mode))
}

// GetTemplates returns the built-in dry food and supplement entries.
func (h *CalculatorHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, templatesResponse{
		DryFood:    models.DryFoodTemplate,
		Supplement: models.SupplementTemplate,
	})
}

// GetRecommendations returns the foods suggested for each nutrient.
func (h *CalculatorHandler) GetRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": h.catalog.Current().Recommendations()})
}

// Diagnose evaluates a posted state without changing it.
func (h *CalculatorHandler) Diagnose(c *gin.Context) {
	var req diagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid diagnosis payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := h.svc.Diagnose(req.State)
	if err != nil {
		h.logger.Debug("diagnosis rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// ApplyAction reduces one action into the posted state.
func (h *CalculatorHandler) ApplyAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid action payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.Apply(req.State, req.Action)
	if err != nil {
		h.logger.Debug("action rejected", zap.String("type", string(req.Action.Type)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
