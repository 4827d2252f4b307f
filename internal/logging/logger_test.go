package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriangalilea/go-utils/internal/logging"
)

func TestConsoleLoggerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logger.Info("resolved key", slog.String("key", "API_KEY"), slog.String("source", "/tmp/my app/.env"))

	line := buf.String()
	assert.Contains(t, line, " INFO  resolved key")
	assert.Contains(t, line, "key=API_KEY")
	assert.Contains(t, line, `source="/tmp/my app/.env"`)
	assert.NotContains(t, line, "\x1b[", "buffers are not terminals, no escape codes expected")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestConsoleLoggerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf, Level: "info"})
	require.NoError(t, err)

	logger.Info("message without caller")
	assert.NotContains(t, buf.String(), ".go:")
}

func TestConsoleLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf, Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  shown")
}

func TestSuccessBadge(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logging.Success(logger, "exported", slog.Int("keys", 3))
	line := buf.String()
	assert.Contains(t, line, " OK    exported")
	assert.Contains(t, line, "keys=3")
	assert.NotContains(t, line, "status=")

	logging.Success(nil, "no logger is fine")
}

func TestGroupsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logging.NewComponentLogger(logger, "kev").WithGroup("cache").Info("hit", slog.String("key", "X"), logging.Error(errors.New("none")))
	line := buf.String()
	assert.Contains(t, line, "component=kev")
	assert.Contains(t, line, "cache.key=X")
	assert.Contains(t, line, "cache.error=none")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf, Format: "json"})
	require.NoError(t, err)

	logger.Warn("careful", slog.String("key", "TOKEN"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "careful", rec["msg"])
	assert.Equal(t, "TOKEN", rec["key"])
	assert.Contains(t, rec, "ts")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("fatal"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNopAndDefault(t *testing.T) {
	nop := logging.NewNop()
	assert.False(t, nop.Enabled(t.Context(), slog.LevelError))
	nop.Error("dropped")

	assert.NotNil(t, logging.Default())
	assert.Same(t, logging.Default(), logging.Default())
}
