package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json")

	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "caller")
}

func TestNewAutoFormatOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "auto")

	log.Info().Msg("plain")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "loud", "json")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
