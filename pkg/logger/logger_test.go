package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maximiza-sistemas/edu-backend/config"
)

func TestNewLogger_Levels(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = NewLogger(&config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLogger_JSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	l, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Error("request error", zap.String("path", "/api/books"))
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "/api/books", entry["path"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "stacktrace")
}
