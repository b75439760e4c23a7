package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSourceJSON(t *testing.T) {
	dir := t.TempDir()
	grades := filepath.Join(dir, "grades.json")
	meta := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(grades, []byte(`{"1":{"CS101":{"credits":4,"grade":"AB"}}}`), 0o644))
	require.NoError(t, os.WriteFile(meta, []byte(`{"1":{"CS101":"Programming"}}`), 0o644))

	cfg := &config.Config{GradesFile: grades, MetadataFile: meta}
	src, closeFn, err := OpenSource(context.Background(), config.SourceJSON, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	tr, err := src.LoadTranscript(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AB", tr["1"]["CS101"].Grade)
}

func TestOpenSourceRejectsMisconfiguration(t *testing.T) {
	ctx := context.Background()

	_, _, err := OpenSource(ctx, "csv", &config.Config{}, zerolog.Nop())
	assert.ErrorContains(t, err, `unknown transcript source "csv"`)

	_, _, err = OpenSource(ctx, config.SourceWorkbook, &config.Config{}, zerolog.Nop())
	assert.ErrorContains(t, err, "WORKBOOK_FILE")

	_, _, err = OpenSource(ctx, config.SourcePostgres, &config.Config{}, zerolog.Nop())
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadScale(t *testing.T) {
	scale, err := LoadScale(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, grading.DefaultScale(), scale)

	path := filepath.Join(t.TempDir(), "scale.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"excluded_courses":[]}`), 0o644))
	scale, err = LoadScale(&config.Config{ScaleFile: path})
	require.NoError(t, err)
	assert.Empty(t, scale.Excluded)
	assert.Equal(t, 10.0, scale.GradePoints["AA"])

	_, err = LoadScale(&config.Config{ScaleFile: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}
