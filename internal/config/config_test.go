package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	for _, key := range []string{"TRANSCRIPT_SOURCE", "GRADES_FILE", "METADATA_FILE", "NAME_COLUMN_WIDTH", "CACHE_TTL_SECONDS", "REDIS_URL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, SourceJSON, cfg.TranscriptSource)
	assert.Equal(t, "assets/grades.json", cfg.GradesFile)
	assert.Equal(t, "assets/metadata.json", cfg.MetadataFile)
	assert.Equal(t, 50, cfg.NameColumnWidth)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRANSCRIPT_SOURCE", "XLSX")
	t.Setenv("NAME_COLUMN_WIDTH", "32")
	t.Setenv("CACHE_TTL_SECONDS", "10")
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")

	cfg := Load()

	assert.Equal(t, SourceWorkbook, cfg.TranscriptSource)
	assert.Equal(t, 32, cfg.NameColumnWidth)
	assert.Equal(t, 10*time.Second, cfg.CacheTTL)
	assert.Equal(t, int32(4), cfg.MaxDBConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "gconvert:report:abc", CacheKey.ReportKey("abc"))
}
