package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ascentviewer/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.FileName)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"), "file ends with a newline")
	assert.Contains(t, string(data), "\n    \"windowProperties\": {\n        \"width\": 1024,")
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{
    "theme": {"name": "default_light"},
    "navigation": {"ignoreExtensionCase": true},
    "debug": {"logging": {"loggingLevel": "DEBUG"}}
}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "default_light", cfg.Theme.Name)
	assert.Equal(t, "#0a7aca", cfg.Theme.AccentColors.AccentColorMain)
	assert.True(t, cfg.Navigation.IgnoreExtensionCase)
	assert.Equal(t, 20, cfg.Navigation.SkipCount)
	assert.Equal(t, float32(1024), cfg.WindowProperties.Width)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", `{"theme": `, "error parsing config file"},
		{"log level", `{"debug": {"logging": {"loggingLevel": "LOUD"}}}`, "invalid logging level"},
		{"accent", `{"theme": {"accentColors": {"accentColorMain": "blue"}}}`, "invalid accent color"},
		{"theme name", `{"theme": {"name": ""}}`, "theme name"},
		{"window size", `{"windowProperties": {"width": 0}}`, "invalid window size"},
		{"panel offset", `{"windowProperties": {"infoPanelOffset": 1.5}}`, "infoPanelOffset"},
		{"skip count", `{"navigation": {"skipCount": 0}}`, "skipCount"},
		{"history size", `{"navigation": {"historySize": -1}}`, "historySize"},
		{"slideshow interval", `{"navigation": {"slideshowSeconds": 0}}`, "slideshowSeconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg := config.Default()
	cfg.WindowProperties.Width = 1280
	cfg.Prompts.EnableExitPrompt = false
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestReset(t *testing.T) {
	path := writeConfig(t, `{"theme": {"name": "custom"}}`)

	cfg, err := config.Reset(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "default_dark", loaded.Theme.Name)
}

func TestLogLevelNames(t *testing.T) {
	tests := map[string]logrus.Level{
		"DEBUG":    logrus.DebugLevel,
		"INFO":     logrus.InfoLevel,
		"WARNING":  logrus.WarnLevel,
		"warn":     logrus.WarnLevel,
		"ERROR":    logrus.ErrorLevel,
		"CRITICAL": logrus.FatalLevel,
	}
	for name, expected := range tests {
		cfg := config.Default()
		cfg.Debug.Logging.LoggingLevel = name
		level, err := cfg.LogLevel()
		require.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}
}
