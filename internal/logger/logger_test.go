package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buffer})

	logger.Info().Msg("hidden")
	logger.Warn().Str("major", "Computer Science").Msg("unknown major dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Computer Science", entry["major"])
	assert.Equal(t, "unknown major dropped", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Level: "nonsense", Output: &buffer})

	logger.Debug().Msg("hidden")
	assert.Zero(t, buffer.Len())

	logger.Info().Msg("shown")
	assert.NotZero(t, buffer.Len())
}

func TestNewPretty(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Level: "debug", Pretty: true, Output: &buffer})

	logger.Debug().Msg("plan built")
	assert.Contains(t, buffer.String(), "plan built")
	assert.False(t, json.Valid(buffer.Bytes()))
}
