package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapJSONLogger(&buf, slog.LevelInfo)

	log.With("module", "rest").Info(context.Background(), "request", "status", 200)
	log.Debug(context.Background(), "hidden")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "rest", entry["module"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("slog", "debug", &buf)
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	l, err = New("zap", "warn", &buf)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("logrus", "info", &buf)
	require.Error(t, err)

	_, err = New("slog", "loud", &buf)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	l := NewNopLogger().With("k", "v")
	ctx := context.Background()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
}
