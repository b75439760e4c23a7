package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/database"
	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/repository"
)

// OpenSource builds the transcript source of the given kind (config.SourceJSON,
// config.SourceWorkbook or config.SourcePostgres). The returned func releases
// any connection the source holds.
func OpenSource(ctx context.Context, kind string, cfg *config.Config, log zerolog.Logger) (TranscriptSource, func(), error) {
	switch kind {
	case config.SourceJSON:
		log.Info().
			Str("grades", cfg.GradesFile).
			Str("metadata", cfg.MetadataFile).
			Msg("Reading transcript from JSON files")
		return repository.NewFileRepository(cfg.GradesFile, cfg.MetadataFile), func() {}, nil

	case config.SourceWorkbook:
		if cfg.WorkbookFile == "" {
			return nil, nil, errors.New("WORKBOOK_FILE is not set")
		}
		log.Info().Str("workbook", cfg.WorkbookFile).Msg("Reading transcript from workbook")
		return repository.NewWorkbookRepository(cfg.WorkbookFile), func() {}, nil

	case config.SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is not set")
		}
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown transcript source %q", kind)
	}
}

// LoadScale returns the default scale, overridden by SCALE_FILE when set.
func LoadScale(cfg *config.Config) (grading.Scale, error) {
	if cfg.ScaleFile == "" {
		return grading.DefaultScale(), nil
	}
	scale, err := repository.LoadScaleFile(cfg.ScaleFile)
	if err != nil {
		return grading.Scale{}, fmt.Errorf("load scale: %w", err)
	}
	return scale, nil
}
