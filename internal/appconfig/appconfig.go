// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is a root-level config file accepted when the default is missing.
	legacyConfigPath = "toolstream.json"
	// defaultReplayChunkSize is how many bytes replay appends per step.
	defaultReplayChunkSize = 8
	// defaultReplayDelay is the pause between replay steps.
	defaultReplayDelay = 30 * time.Millisecond
)

// Config represents the top-level application configuration.
type Config struct {
	Debug               bool              `json:"debug"`
	JSONMode            bool              `json:"jsonMode"`
	LogFile             string            `json:"logFile,omitempty"`
	LogLevel            string            `json:"logLevel,omitempty"`
	DisableDefaultTools bool              `json:"disableDefaultTools"`
	Tools               []Tool            `json:"tools,omitempty"`
	Aliases             map[string]string `json:"aliases,omitempty"`
	DialoguePatterns    []string          `json:"dialoguePatterns,omitempty"`
	ReplayChunkSize     int               `json:"replayChunkSize,omitempty"`
	ReplayDelayMs       int               `json:"replayDelayMs,omitempty"`
	ConfigPath          string            `json:"-"`
}

// Tool declares a callable tool. Parameters, when present, is a JSON Schema
// the tool's arguments must satisfy.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ReplayChunk returns how many bytes each replay step appends.
func (c Config) ReplayChunk() int {
	if c.ReplayChunkSize <= 0 {
		return defaultReplayChunkSize
	}
	return c.ReplayChunkSize
}

// ReplayDelay returns the pause between replay steps. A negative value
// disables the pause.
func (c Config) ReplayDelay() time.Duration {
	switch {
	case c.ReplayDelayMs < 0:
		return 0
	case c.ReplayDelayMs == 0:
		return defaultReplayDelay
	default:
		return time.Duration(c.ReplayDelayMs) * time.Millisecond
	}
}

// LogFilePath returns the log file path, or "" when logging is disabled.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// LogLevelName returns the logrus level to use; debug mode forces "debug".
func (c Config) LogLevelName() string {
	if c.Debug {
		return "debug"
	}
	return strings.TrimSpace(c.LogLevel)
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks tool declarations for missing or duplicate names.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Tools))
	for i, tool := range c.Tools {
		name := strings.ToLower(strings.TrimSpace(tool.Name))
		if name == "" {
			return fmt.Errorf("tools[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("tools[%d]: duplicate tool %q", i, tool.Name)
		}
		seen[name] = true
	}
	return nil
}
