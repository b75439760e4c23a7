package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/database"
	"github.com/stemsi/gconvert/internal/handler"
	"github.com/stemsi/gconvert/internal/logger"
	"github.com/stemsi/gconvert/internal/middleware"
	"github.com/stemsi/gconvert/internal/router"
	"github.com/stemsi/gconvert/internal/service"
	"github.com/stemsi/gconvert/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("source", cfg.TranscriptSource).
		Str("log_level", cfg.LogLevel).
		Msg("Starting gconvert server")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Grading Scale ─────────────────────────────────────────────────
	scale, err := service.LoadScale(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load grading scale")
	}

	// ─── Open Transcript Source ────────────────────────────────────────
	src, closeSource, err := service.OpenSource(ctx, cfg.TranscriptSource, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open transcript source")
	}
	defer closeSource()

	// ─── Report Cache (Redis or in-process) ────────────────────────────
	store, closeStore, err := database.NewCacheStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer closeStore()

	// ─── Initialize Services & Handlers ────────────────────────────────
	transcriptService := service.NewTranscriptService(cfg, src, scale, store, log)

	// Fail fast on a broken source instead of on the first request.
	if _, err := transcriptService.Transcript(ctx); err != nil {
		log.Fatal().Err(err).Msg("Transcript source is unreadable")
	}

	handlers := &router.Handlers{
		Transcript: handler.NewTranscriptHandler(transcriptService, log),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
