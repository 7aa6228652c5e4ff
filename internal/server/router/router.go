package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/config"
	"github.com/mamadbah2/inumeshi/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(cfg config.ServerConfig, handler *handlers.CalculatorHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/ingredients", handler.SearchIngredients)
		api.GET("/ingredients/:id", handler.GetIngredient)
		api.GET("/standards", handler.GetStandards)
		api.GET("/templates", handler.GetTemplates)
		api.GET("/recommendations", handler.GetRecommendations)
		api.POST("/diagnosis", handler.Diagnose)
		api.POST("/state/actions", handler.ApplyAction)
	}

	if cfg.StaticDir != "" {
		r.NoRoute(staticFallback(cfg.StaticDir))
		logger.Info("serving static assets", zap.String("dir", cfg.StaticDir))
	}

	logger.Info("router initialized")
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// staticFallback serves the browser bundle for every path outside /api.
func staticFallback(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
