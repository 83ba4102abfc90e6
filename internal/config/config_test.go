package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.True(t, cfg.Hints)
	assert.Empty(t, cfg.Progress)
	assert.Empty(t, cfg.DB)
	assert.Empty(t, cfg.Lessons)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"MATHJOURNEY_PROGRESS":  "/tmp/p.json",
		"MATHJOURNEY_DB":        "/tmp/j.db",
		"MATHJOURNEY_BACKEND":   "sqlite",
		"MATHJOURNEY_LOG_LEVEL": "debug",
		"MATHJOURNEY_HINTS":     "false",
		"MATHJOURNEY_LESSONS":   "/tmp/lessons.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.json", cfg.Progress)
	assert.Equal(t, "/tmp/j.db", cfg.DB)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Hints)
	assert.Equal(t, "/tmp/lessons.yaml", cfg.Lessons)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"backend", map[string]string{"MATHJOURNEY_BACKEND": "redis"}},
		{"hints", map[string]string{"MATHJOURNEY_HINTS": "maybe"}},
		{"level", map[string]string{"MATHJOURNEY_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.env)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProcessEnv(t *testing.T) {
	t.Setenv("MATHJOURNEY_BACKEND", "sqlite")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Config{LogLevel: slog.LevelWarn}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")
}
