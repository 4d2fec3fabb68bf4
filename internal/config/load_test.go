package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/fiszki/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 20000, cfg.API.TimeoutMs)
	assert.Equal(t, 50, cfg.Session.Limit)
	assert.Equal(t, "A1", cfg.Session.Level)
	assert.Equal(t, 1200, cfg.Session.CorrectDelayMs)
	assert.Equal(t, 1500, cfg.Session.CompletionDelayMs)
	assert.Equal(t, 100, cfg.MiniGame.Bonus)
	assert.Equal(t, 6, cfg.MiniGame.MaxRows)
	assert.Equal(t, 5, cfg.MiniGame.WordLength)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Offline.Enabled)
	assert.Equal(t, filepath.Join(home, ".fiszki", "fiszki.db"), cfg.Offline.DBPath)
	assert.Equal(t, filepath.Join(home, ".fiszki", "fiszki.log"), cfg.Log.File)
}

func TestLoadHomeConfigFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".fiszki")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("session:\n  level: B2\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "B2", cfg.Session.Level)
}

func TestLoadFromFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, `
api:
  base_url: https://fiszki.example.com
  token: abc123
  timeout_ms: 0
session:
  limit: 10
  level: B1
minigame:
  bonus: 250
offline:
  enabled: true
  db_path: ~/decks.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fiszki.example.com", cfg.API.BaseURL)
	assert.Equal(t, "abc123", cfg.API.Token)
	assert.Equal(t, 0, cfg.API.TimeoutMs)
	assert.Equal(t, 10, cfg.Session.Limit)
	assert.Equal(t, "B1", cfg.Session.Level)
	assert.Equal(t, 250, cfg.MiniGame.Bonus)
	assert.Equal(t, 6, cfg.MiniGame.MaxRows, "unset keys keep defaults")
	assert.True(t, cfg.Offline.Enabled)
	assert.NotContains(t, cfg.Offline.DBPath, "~")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "api:\n  base_url: https://file.example.com\nsession:\n  limit: 10\n")
	t.Setenv("FISZKI_API_BASE_URL", "https://env.example.com")
	t.Setenv("FISZKI_SESSION_LIMIT", "7")
	t.Setenv("FISZKI_OFFLINE_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.Session.Limit)
	assert.True(t, cfg.Offline.Enabled)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad url", "api:\n  base_url: not a url\n"},
		{"zero limit", "session:\n  limit: 0\n"},
		{"unknown level", "session:\n  level: Z9\n"},
		{"negative delay", "session:\n  correct_delay_ms: -1\n"},
		{"zero rows", "minigame:\n  max_rows: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestConfigConversions(t *testing.T) {
	isolateHome(t)
	cfg, err := Load(writeConfig(t, "api:\n  token: t\n  verify_timeout_ms: 0\nsession:\n  correct_delay_ms: 900\n"))
	require.NoError(t, err)

	ac := cfg.APIClient()
	assert.Equal(t, "t", ac.Token)
	assert.Equal(t, 20*time.Second, ac.CallTimeout(api.CallScore))
	assert.Equal(t, 20*time.Second, ac.CallTimeout(api.CallVerify))

	so := cfg.SessionOptions()
	assert.Equal(t, 900*time.Millisecond, so.CorrectDelay)
	assert.Equal(t, 1500*time.Millisecond, so.CompletionDelay)
	assert.Equal(t, 100, so.MiniGameBonus)
	assert.Equal(t, 6, so.MaxGuessRows)
	assert.Equal(t, "A1", so.Level)
}
