package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalSourceHandler(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError))

	log.Info("plain message")
	log.Error("failing message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.NotContains(t, lines[0], slog.SourceKey, "info records carry no source")
	assert.Contains(t, lines[1], slog.SourceKey, "error records carry source location")
}

func TestConditionalSourceHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).With("component", "test")

	log.Warn("warned")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.NotContains(t, buf.String(), slog.SourceKey)
}
