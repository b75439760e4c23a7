package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/database"
	"github.com/stemsi/gconvert/internal/logger"
	"github.com/stemsi/gconvert/internal/repository"
	"github.com/stemsi/gconvert/internal/service"
)

// seed-transcript copies a file-based transcript into the transcript_courses
// table, replacing whatever was stored before.
func main() {
	from := flag.String("from", config.SourceJSON, "Source to copy from: json or xlsx")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *from == config.SourcePostgres {
		log.Fatal().Msg("Refusing to seed postgres from itself")
	}

	src, closeSource, err := service.OpenSource(ctx, *from, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open transcript source")
	}
	defer closeSource()

	transcript, err := src.LoadTranscript(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load transcript")
	}
	meta, err := src.LoadMetadata(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load course metadata")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Printf("=== Seeding %d semesters from %s ===\n", len(transcript), *from)

	n, err := repository.NewPostgresRepository(pool).Replace(ctx, transcript, meta)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed transcript")
	}

	fmt.Printf("Seeded %d courses\n", n)
}
