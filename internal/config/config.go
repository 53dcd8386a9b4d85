// Package config loads and saves the viewer's JSON configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
)

// AppName names the per-user configuration directory.
const AppName = "ascentviewer"

// FileName is the configuration file inside the configuration directory.
const FileName = "config.json"

// Config is the persisted application configuration. Keys use the camelCase
// names of the viewer's historical config.json.
type Config struct {
	WindowProperties struct {
		Width           float32 `json:"width"`           // Main window width
		Height          float32 `json:"height"`          // Main window height
		InfoPanelOffset float64 `json:"infoPanelOffset"` // Split between image and info panel
	} `json:"windowProperties"`
	Prompts struct {
		EnableExitPrompt bool `json:"enableExitPrompt"` // Confirm before quitting
	} `json:"prompts"`
	Debug struct {
		EnableDebugMenu bool `json:"enableDebugMenu"` // Show the Debug menu
		Logging         struct {
			LoggingLevel string `json:"loggingLevel"` // DEBUG, INFO, WARNING, ERROR
		} `json:"logging"`
	} `json:"debug"`
	Theme struct {
		Name         string `json:"name"` // Theme directory name
		AccentColors struct {
			AccentColorMain string `json:"accentColorMain"` // #RRGGBB accent
		} `json:"accentColors"`
	} `json:"theme"`
	TemporaryFiles struct {
		Logs struct {
			DeleteLogsOnStartup bool `json:"deleteLogsOnStartup"` // Remove old log files at start
		} `json:"logs"`
	} `json:"temporaryFiles"`
	Navigation struct {
		WatchDirectory      bool `json:"watchDirectory"`      // Reload the list when the folder changes
		IgnoreExtensionCase bool `json:"ignoreExtensionCase"` // List IMG.PNG as well as img.png
		SkipCount           int  `json:"skipCount"`           // Images moved by Page Up/Down
		HistorySize         int  `json:"historySize"`         // Back/forward entries kept, 0 disables
		SlideshowSeconds    int  `json:"slideshowSeconds"`    // Time between slideshow images
	} `json:"navigation"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Default returns the configuration written on first start.
func Default() *Config {
	cfg := &Config{}

	cfg.WindowProperties.Width = 1024
	cfg.WindowProperties.Height = 768
	cfg.WindowProperties.InfoPanelOffset = 0.78

	cfg.Prompts.EnableExitPrompt = true

	cfg.Debug.EnableDebugMenu = false
	cfg.Debug.Logging.LoggingLevel = "INFO"

	cfg.Theme.Name = "default_dark"
	cfg.Theme.AccentColors.AccentColorMain = "#0a7aca"

	cfg.TemporaryFiles.Logs.DeleteLogsOnStartup = true

	cfg.Navigation.WatchDirectory = false
	cfg.Navigation.IgnoreExtensionCase = false
	cfg.Navigation.SkipCount = 20
	cfg.Navigation.HistorySize = 100
	cfg.Navigation.SlideshowSeconds = 3

	return cfg
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the location of config.json in the configuration directory.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path. A missing file is created from the
// defaults. Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cfg.Save(path); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decoding over the defaults leaves unset keys untouched.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path as JSON indented by four spaces with
// a trailing newline, creating the parent directory when needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset overwrites the file at path with the defaults and returns them.
func Reset(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the rest of the application relies on.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if !hexColor.MatchString(c.Theme.AccentColors.AccentColorMain) {
		return fmt.Errorf("invalid accent color %q: expected #RRGGBB or #RRGGBBAA", c.Theme.AccentColors.AccentColorMain)
	}
	if c.Theme.Name == "" {
		return errors.New("theme name must not be empty")
	}
	if c.WindowProperties.Width <= 0 || c.WindowProperties.Height <= 0 {
		return fmt.Errorf("invalid window size %vx%v", c.WindowProperties.Width, c.WindowProperties.Height)
	}
	if c.WindowProperties.InfoPanelOffset < 0 || c.WindowProperties.InfoPanelOffset > 1 {
		return fmt.Errorf("infoPanelOffset must be between 0 and 1, got %v", c.WindowProperties.InfoPanelOffset)
	}
	if c.Navigation.SkipCount < 1 {
		return fmt.Errorf("skipCount must be at least 1, got %d", c.Navigation.SkipCount)
	}
	if c.Navigation.SlideshowSeconds < 1 {
		return fmt.Errorf("slideshowSeconds must be at least 1, got %d", c.Navigation.SlideshowSeconds)
	}
	if c.Navigation.HistorySize < 0 {
		return fmt.Errorf("historySize must not be negative, got %d", c.Navigation.HistorySize)
	}
	return nil
}

// LogLevel parses the configured logging level. The Python-style WARNING and
// CRITICAL names are accepted alongside logrus' own.
func (c *Config) LogLevel() (logrus.Level, error) {
	name := c.Debug.Logging.LoggingLevel
	switch name {
	case "WARNING":
		name = "warn"
	case "CRITICAL":
		name = "fatal"
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid logging level: %w", err)
	}
	return level, nil
}
