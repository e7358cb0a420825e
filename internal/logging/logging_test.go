package logging_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudheej/tcdev/internal/logging"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	result := logging.New(logging.Config{})
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	result := logging.New(logging.Config{Level: "shouting"})
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcdev.log")
	result := logging.New(logging.Config{Level: "debug", File: path})

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)
	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())
}

func TestNew_UnwritableFileFallsBack(t *testing.T) {
	// Parent directory does not exist; the logger must still come up.
	path := filepath.Join(t.TempDir(), "missing", "tcdev.log")
	result := logging.New(logging.Config{File: path})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestComponentLogger_TagsEvents(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := logging.ComponentLogger(base, "runner")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"runner"`)
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := base.WithContext(context.Background())

	logging.FromContext(ctx).Info().Msg("through context")
	assert.Contains(t, buf.String(), "through context")
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := logging.ContextWithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", logging.TraceIDFromContext(ctx))
	assert.Equal(t, "trace-123", logging.GetOrGenerateTraceID(ctx))
}

func TestTraceID_Generated(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	first := logging.GetOrGenerateTraceID(ctx)
	second := logging.GetOrGenerateTraceID(ctx)
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second, "each call without a stored ID mints a fresh ULID")
}
