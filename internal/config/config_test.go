package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "file", cfg.SaveBackend)
	assert.Equal(t, "savegame.json", cfg.SavePath)
	assert.Equal(t, "age.json", cfg.AgePath)
	assert.Zero(t, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.GeoTimeout)
	assert.Len(t, cfg.GeoProviders, 3)
	assert.Equal(t, "https://ipapi.co/json/", cfg.GeoProviders[0])
	assert.InDelta(t, 1.0, cfg.NarrationPacing, 0.0001)
	assert.Equal(t, 80, cfg.TermWidth)
	assert.False(t, cfg.SweetMode)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile_Environment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("SAVE_BACKEND", " Redis ")
	t.Setenv("GEO_PROVIDERS", "http://a.test/,http://b.test/")
	t.Setenv("GEO_DISABLED", "true")
	t.Setenv("NARRATION_PACING", "0")
	t.Setenv("FETCH_TIMEOUT", "250ms")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "redis", cfg.SaveBackend)
	assert.Equal(t, []string{"http://a.test/", "http://b.test/"}, cfg.GeoProviders)
	assert.True(t, cfg.GeoDisabled)
	assert.Zero(t, cfg.NarrationPacing)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchTimeout)
}

func TestLoadFile_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOWER_TEST_UNUSED=1\nTERM_WIDTH=100\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("TOWER_TEST_UNUSED")
		os.Unsetenv("TERM_WIDTH")
	})

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.TermWidth)
}

func TestLoadFile_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SAVE_PATH=from-file.json\n"), 0o600))
	t.Setenv("SAVE_PATH", "from-env.json")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.SavePath)
}

func TestLoadFile_MissingFileIgnored(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "FETCH_TIMEOUT", "soon"},
		{"bad bool", "GEO_DISABLED", "maybe"},
		{"negative pacing", "NARRATION_PACING", "-1"},
		{"negative width", "TERM_WIDTH", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFile("")
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}
