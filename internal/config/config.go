// Package config loads the per-project science configuration from
// .science/config.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the project configuration.
type Config struct {
	Git    GitConfig    `yaml:"git"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// GitConfig controls how science drives git.
type GitConfig struct {
	Binary         string `yaml:"binary"`           // executable used for commit and rev-parse
	CommitOnRecord bool   `yaml:"commit_on_record"` // default for `science record`
	CommitOnStart  bool   `yaml:"commit_on_start"`  // default for `science start`
	AllowEmpty     bool   `yaml:"allow_empty"`      // pass --allow-empty to git commit
}

// LogConfig controls the project log.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color string `yaml:"color"` // auto, always or never
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Binary:         "git",
			CommitOnRecord: true,
		},
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Color: ColorAuto},
	}
}

// LoadConfig reads path. A missing file yields the defaults; keys absent
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EnsureConfig writes the defaults to path unless a file is already there.
// It reports whether a file was written.
func EnsureConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config: %w", err)
	}
	return true, SaveConfig(path, Default())
}

// Validate rejects values science does not understand.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git.Binary) == "" {
		return errors.New("git.binary must not be empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be auto, always or never (got %q)", c.Output.Color)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
}
