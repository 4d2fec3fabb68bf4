package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" Warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("loud", &buf)

	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), "configured_level=loud")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fiszki.log")
	w, err := OpenFile(path)
	require.NoError(t, err)

	Setup("info", w).Info("hello")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
}
