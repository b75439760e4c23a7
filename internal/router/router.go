package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/handler"
	"github.com/stemsi/gconvert/internal/middleware"
	"github.com/stemsi/gconvert/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Transcript *handler.TranscriptHandler
}

// SetupRouter configures the Gin route groups with their middlewares.
// The limiter guards the evaluate endpoint; the caller owns its lifetime.
func SetupRouter(
	handlers *Handlers,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request IDs first so the access log can carry them.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log.With().Str("component", "http").Logger()))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── 1. Stored Transcript (read-only) ──────────────────────────────
	// The source is static between deploys; let clients hold results briefly.
	stored := api.Group("")
	stored.Use(middleware.CacheControl(int(cfg.CacheTTL.Seconds())))
	{
		stored.GET("/transcript", handlers.Transcript.GetTranscript)
		stored.GET("/transcript/export", handlers.Transcript.ExportTranscript)
		stored.GET("/semesters/:id/index", handlers.Transcript.GetSemesterIndex)
		stored.GET("/cumulative-index", handlers.Transcript.GetCumulativeIndex)
		stored.GET("/converted-index", handlers.Transcript.GetConvertedIndex)
		stored.GET("/report", handlers.Transcript.GetReport)
		stored.GET("/scale", handlers.Transcript.GetScale)
	}

	// ─── 2. Ad-hoc Evaluation (rate limited) ───────────────────────────
	evaluate := api.Group("/evaluate")
	evaluate.Use(limiter.Middleware())
	{
		evaluate.POST("", handlers.Transcript.Evaluate)
	}

	return router
}
