// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/tasktree/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tasktree configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Render selects and tunes the renderer
	Render RenderConfig `toml:"render" json:"render"`

	// Group holds the defaults applied to every task group
	Group GroupConfig `toml:"group" json:"group"`

	// UI holds visual settings
	UI UIConfig `toml:"ui" json:"ui"`
}

// RenderConfig contains renderer configuration.
type RenderConfig struct {
	// Renderer is one of "auto", "tea", "plain", "none"
	Renderer string `toml:"renderer" json:"renderer"`
	// FPS caps how often the interactive renderer repaints
	FPS int `toml:"fps" json:"fps"`
	// ShowDuration appends elapsed time to settled tasks
	ShowDuration bool `toml:"show_duration" json:"show_duration"`
}

// GroupConfig contains the default scheduling policy for groups.
type GroupConfig struct {
	// Concurrency bounds members in flight; 0 means unlimited
	Concurrency int `toml:"concurrency" json:"concurrency"`
	// StopOnError stops starting members after the first failure
	StopOnError bool `toml:"stop_on_error" json:"stop_on_error"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is one of "auto", "dark", "light", "mono"
	Theme string `toml:"theme" json:"theme"`
	// Spinner is one of "dots", "line", "pulse", "points"
	Spinner string `toml:"spinner" json:"spinner"`
	// NoColor disables colors, as the NO_COLOR variable does
	NoColor bool `toml:"no_color" json:"no_color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Render: RenderConfig{
			Renderer:     "auto",
			FPS:          12,
			ShowDuration: true,
		},
		Group: GroupConfig{
			Concurrency: 1,
			StopOnError: true,
		},
		UI: UIConfig{
			Theme:   "auto",
			Spinner: "dots",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tasktree configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tasktree"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults. A .env file in the
// working directory is loaded next and environment overrides are applied
// last.
//
// A config file that exists but cannot be decoded is reported alongside the
// defaults so the caller can warn and carry on.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if path, ok := firstExisting(ConfigPathTOML, ConfigPathJSON); ok {
		if err := loadFile(cfg, path); err != nil {
			loadErr = err
			cfg = Default()
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format follows the file extension; anything but .json is
// read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file over cfg. Keys missing from the file keep
// their current values.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
		return nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return nil
}

// finish applies .env, environment overrides and validation.
func finish(cfg *Config) error {
	if err := LoadDotEnv(".env"); err != nil {
		return err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func firstExisting(paths ...func() (string, error)) (string, bool) {
	for _, p := range paths {
		path, err := p()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// fillDefaults lower-cases the named settings and fills in empty ones with
// defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	cfg.Render.Renderer = strings.ToLower(strings.TrimSpace(cfg.Render.Renderer))
	cfg.UI.Theme = strings.ToLower(strings.TrimSpace(cfg.UI.Theme))
	cfg.UI.Spinner = strings.ToLower(strings.TrimSpace(cfg.UI.Spinner))

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Render.Renderer == "" {
		cfg.Render.Renderer = defaults.Render.Renderer
	}
	if cfg.Render.FPS == 0 {
		cfg.Render.FPS = defaults.Render.FPS
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.Spinner == "" {
		cfg.UI.Spinner = defaults.UI.Spinner
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file.
// RELIABILITY: Atomic write with fsync prevents a truncated config on crash.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# tasktree configuration file")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validRenderers = []string{"auto", "tea", "plain", "none"}
	validThemes    = []string{"auto", "dark", "light", "mono"}
	validSpinners  = []string{"dots", "line", "pulse", "points"}
)

// MaxFPS is the highest repaint rate accepted.
const MaxFPS = 60

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !oneOf(c.Render.Renderer, validRenderers) {
		errs = append(errs, ValidationError{
			Field:   "render.renderer",
			Message: fmt.Sprintf("invalid renderer '%s', must be one of: %s", c.Render.Renderer, strings.Join(validRenderers, ", ")),
		})
	}
	if c.Render.FPS < 1 || c.Render.FPS > MaxFPS {
		errs = append(errs, ValidationError{
			Field:   "render.fps",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxFPS, c.Render.FPS),
		})
	}
	if c.Group.Concurrency < 0 {
		errs = append(errs, ValidationError{
			Field:   "group.concurrency",
			Message: fmt.Sprintf("cannot be negative, got %d (use 0 for unlimited)", c.Group.Concurrency),
		})
	}
	if !oneOf(c.UI.Theme, validThemes) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(validThemes, ", ")),
		})
	}
	if !oneOf(c.UI.Spinner, validSpinners) {
		errs = append(errs, ValidationError{
			Field:   "ui.spinner",
			Message: fmt.Sprintf("invalid spinner '%s', must be one of: %s", c.UI.Spinner, strings.Join(validSpinners, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TASKTREE_RENDERER: overrides render.renderer
//   - TASKTREE_FPS: overrides render.fps
//   - TASKTREE_CONCURRENCY: overrides group.concurrency
//   - TASKTREE_STOP_ON_ERROR: overrides group.stop_on_error
//   - TASKTREE_SPINNER: overrides ui.spinner
//   - TASKTREE_THEME: overrides ui.theme
//   - NO_COLOR: any non-empty value sets ui.no_color
//
// Values that cannot be parsed are reported as ValidateErrors and leave the
// setting unchanged.
func (c *Config) ApplyEnvOverrides() error {
	var errs ValidateErrors

	if v := os.Getenv("TASKTREE_RENDERER"); v != "" {
		c.Render.Renderer = strings.ToLower(v)
	}
	if v := os.Getenv("TASKTREE_FPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "TASKTREE_FPS", Message: fmt.Sprintf("not a number: %q", v)})
		} else {
			c.Render.FPS = n
		}
	}
	if v := os.Getenv("TASKTREE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "TASKTREE_CONCURRENCY", Message: fmt.Sprintf("not a number: %q", v)})
		} else {
			c.Group.Concurrency = n
		}
	}
	if v := os.Getenv("TASKTREE_STOP_ON_ERROR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "TASKTREE_STOP_ON_ERROR", Message: fmt.Sprintf("not a boolean: %q", v)})
		} else {
			c.Group.StopOnError = b
		}
	}
	if v := os.Getenv("TASKTREE_SPINNER"); v != "" {
		c.UI.Spinner = strings.ToLower(v)
	}
	if v := os.Getenv("TASKTREE_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
