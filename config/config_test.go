package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/gazetris/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8088", cfg.HTTPAddr)
	assert.Equal(t, 300*time.Millisecond, cfg.ClearDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.BaseSpeed)
	assert.False(t, cfg.ClassifierEnabled())
}

func TestOverrides(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(map[string]string{
		"LOG_LEVEL":                    "DEBUG",
		"LOG_FORMAT":                   "json",
		"GAZETRIS_HTTP_ADDR":           "",
		"GAZETRIS_DB":                  "/tmp/scores.db",
		"GAZETRIS_CLASSIFIER_URL":      "https://detect.example/infer",
		"GAZETRIS_CLASSIFIER_KEY":      "k",
		"GAZETRIS_CLASSIFIER_INTERVAL": "250ms",
		"GAZETRIS_GAZE_THRESHOLD":      "12.5",
		"GAZETRIS_FRAME_PATH":          "/tmp/frame.jpg",
		"GAZETRIS_CLEAR_DELAY":         "1s",
		"GAZETRIS_BASE_SPEED":          " 600ms ",
		"GAZETRIS_DEBUG_UI":            "true",
	}))

	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.HTTPAddr, "empty value disables the server")
	assert.Equal(t, "/tmp/scores.db", cfg.DBPath)
	assert.Equal(t, 250*time.Millisecond, cfg.ClassifierInterval)
	assert.Equal(t, 12.5, cfg.GazeThreshold)
	assert.Equal(t, time.Second, cfg.ClearDelay)
	assert.Equal(t, 600*time.Millisecond, cfg.BaseSpeed)
	assert.True(t, cfg.DebugUI)
	assert.True(t, cfg.ClassifierEnabled())
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]string{
		"LOG_LEVEL":                    "chatty",
		"LOG_FORMAT":                   "xml",
		"GAZETRIS_CLEAR_DELAY":         "soon",
		"GAZETRIS_BASE_SPEED":          "-5ms",
		"GAZETRIS_GAZE_THRESHOLD":      "0",
		"GAZETRIS_DEBUG_UI":            "maybe",
		"GAZETRIS_CLASSIFIER_INTERVAL": "10",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := config.FromLookup(lookupFrom(map[string]string{key: value}))

			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GAZETRIS_CLEAR_DELAY=450ms\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("GAZETRIS_BASE_SPEED", "700ms")

	cfg, err := config.Load()
	os.Unsetenv("GAZETRIS_CLEAR_DELAY")

	require.NoError(t, err)
	assert.Equal(t, 450*time.Millisecond, cfg.ClearDelay)
	assert.Equal(t, 700*time.Millisecond, cfg.BaseSpeed)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = zerolog.WarnLevel

	logger := cfg.NewLogger(&buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("session", "abc").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"session":"abc"`)
}
