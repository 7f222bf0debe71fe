package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/brandkit/pkg/logger"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNewJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithAttr(slog.String("service", "brandkit")),
	)

	log.Info("upload accepted", "file", "logo.png")

	rec := decodeRecord(t, &buf)
	assert.Equal(t, "upload accepted", rec["msg"])
	assert.Equal(t, "brandkit", rec["service"])
	assert.Equal(t, "logo.png", rec["file"])
}

func TestNewLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelWarn),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewTextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
	)

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

type requestIDKey struct{}

func TestWithContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", requestIDKey{}),
	)

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-123")
	log.InfoContext(ctx, "handled")

	rec := decodeRecord(t, &buf)
	assert.Equal(t, "req-123", rec["request_id"])
}

func TestWithContextValueAbsent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", requestIDKey{}),
	)

	log.InfoContext(context.Background(), "handled")

	rec := decodeRecord(t, &buf)
	_, present := rec["request_id"]
	assert.False(t, present)
}

func TestWithEnvironmentPresets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithEnvironment("production", "brandkit"),
		logger.WithOutput(&buf),
	)

	log.Debug("dropped in production")
	assert.Zero(t, buf.Len())

	log.Info("kept")
	rec := decodeRecord(t, &buf)
	assert.Equal(t, "brandkit", rec["service"])
	assert.Equal(t, "production", rec["env"])
}
