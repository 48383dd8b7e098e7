// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for mcp.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $MCP_CONFIG
//   - ~/.mcp/config.toml
//   - ~/.mcp/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/mcp-console/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mcp configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Console controls the command console and macro playback
	Console ConsoleConfig `toml:"console" json:"console"`

	// Dashboard controls the simulated metric panels
	Dashboard DashboardConfig `toml:"dashboard" json:"dashboard"`

	// UI controls rendering
	UI UIConfig `toml:"ui" json:"ui"`

	// Macros are preset macros loaded into every session
	Macros []MacroPreset `toml:"macros" json:"macros"`
}

// ConsoleConfig contains command console configuration.
type ConsoleConfig struct {
	// Prompt is shown before the input line
	Prompt string `toml:"prompt" json:"prompt"`
	// PlaybackStepDelayMs is the pause before each macro playback step (0-10000)
	PlaybackStepDelayMs int `toml:"playback_step_delay_ms" json:"playback_step_delay_ms"`
	// MaxMacroDepth bounds nested "macro run" playback
	MaxMacroDepth int `toml:"max_macro_depth" json:"max_macro_depth"`
	// HistoryLimit restricts Up/Down recall to the newest entries (0 = all)
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
}

// DashboardConfig contains mock metric configuration.
type DashboardConfig struct {
	StatusRefreshSecs   int `toml:"status_refresh_secs" json:"status_refresh_secs"`
	ResourceRefreshSecs int `toml:"resource_refresh_secs" json:"resource_refresh_secs"`
	SecurityRefreshSecs int `toml:"security_refresh_secs" json:"security_refresh_secs"`
	NetworkNodes        int `toml:"network_nodes" json:"network_nodes"`
	// Seed fixes the metric generator (0 = time based)
	Seed int64 `toml:"seed" json:"seed"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowSuggestions displays suggestion chips under the input
	ShowSuggestions bool `toml:"show_suggestions" json:"show_suggestions"`
	// ShowPayloads displays response payloads in the transcript
	ShowPayloads bool `toml:"show_payloads" json:"show_payloads"`
	// ShowToasts enables warning/error toasts
	ShowToasts bool `toml:"show_toasts" json:"show_toasts"`
	// ToastsPerSecond limits toast creation during playback bursts
	ToastsPerSecond float64 `toml:"toasts_per_second" json:"toasts_per_second"`
	// ToastBurst is the number of toasts allowed at once
	ToastBurst int `toml:"toast_burst" json:"toast_burst"`
}

// MacroPreset is a macro defined in the configuration file.
type MacroPreset struct {
	Name        string   `toml:"name" json:"name"`
	Description string   `toml:"description,omitempty" json:"description,omitempty"`
	Commands    []string `toml:"commands" json:"commands"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Console: ConsoleConfig{
			Prompt:              "> ",
			PlaybackStepDelayMs: 500,
			MaxMacroDepth:       8,
		},
		Dashboard: DashboardConfig{
			StatusRefreshSecs:   5,
			ResourceRefreshSecs: 5,
			SecurityRefreshSecs: 8,
			NetworkNodes:        20,
		},
		UI: UIConfig{
			Theme:           "auto",
			ShowSuggestions: true,
			ShowPayloads:    true,
			ShowToasts:      true,
			ToastsPerSecond: 2,
			ToastBurst:      4,
		},
	}
}

// StepDelay returns the playback step delay as a duration.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.Console.PlaybackStepDelayMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the mcp configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mcp"), nil
}

func pathIn(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) { return pathIn("config.toml") }

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) { return pathIn("config.json") }

// LogPath returns the path of the TUI log file.
func LogPath() (string, error) { return pathIn("mcp.log") }

// HistoryPath returns the path of the line REPL history file.
func HistoryPath() (string, error) { return pathIn("history") }

// ResolvePath returns the config file that Load reads: $MCP_CONFIG, then an
// existing config.toml or config.json, then the config.toml location.
func ResolvePath() (string, error) {
	if p := os.Getenv("MCP_CONFIG"); p != "" {
		return p, nil
	}
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the resolved config file, or defaults when no
// file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ResolvePath()
	if err != nil {
		return finish(Default())
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if os.Getenv("MCP_CONFIG") != "" {
			return nil, fmt.Errorf("config file %s: %w", path, statErr)
		}
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("WARNING: unknown config keys in %s: %v", path, undecoded)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values that have no meaning of their own.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Console.Prompt == "" {
		c.Console.Prompt = defaults.Console.Prompt
	}
	if c.Console.MaxMacroDepth == 0 {
		c.Console.MaxMacroDepth = defaults.Console.MaxMacroDepth
	}
	if c.Dashboard.StatusRefreshSecs == 0 {
		c.Dashboard.StatusRefreshSecs = defaults.Dashboard.StatusRefreshSecs
	}
	if c.Dashboard.ResourceRefreshSecs == 0 {
		c.Dashboard.ResourceRefreshSecs = defaults.Dashboard.ResourceRefreshSecs
	}
	if c.Dashboard.SecurityRefreshSecs == 0 {
		c.Dashboard.SecurityRefreshSecs = defaults.Dashboard.SecurityRefreshSecs
	}
	if c.Dashboard.NetworkNodes == 0 {
		c.Dashboard.NetworkNodes = defaults.Dashboard.NetworkNodes
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ToastsPerSecond == 0 {
		c.UI.ToastsPerSecond = defaults.UI.ToastsPerSecond
	}
	if c.UI.ToastBurst == 0 {
		c.UI.ToastBurst = defaults.UI.ToastBurst
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the resolved config file.
func Save(cfg *Config) error {
	path, err := ResolvePath()
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# mcp configuration file\n")
	buf.WriteString("# Generated by mcp - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
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
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
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
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	check := func(ok bool, field, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	check(c.Console.PlaybackStepDelayMs >= 0 && c.Console.PlaybackStepDelayMs <= 10000,
		"console.playback_step_delay_ms", "must be between 0 and 10000, got %d", c.Console.PlaybackStepDelayMs)
	check(c.Console.MaxMacroDepth >= 1 && c.Console.MaxMacroDepth <= 64,
		"console.max_macro_depth", "must be between 1 and 64, got %d", c.Console.MaxMacroDepth)
	check(c.Console.HistoryLimit >= 0,
		"console.history_limit", "must not be negative, got %d", c.Console.HistoryLimit)

	for field, secs := range map[string]int{
		"dashboard.status_refresh_secs":   c.Dashboard.StatusRefreshSecs,
		"dashboard.resource_refresh_secs": c.Dashboard.ResourceRefreshSecs,
		"dashboard.security_refresh_secs": c.Dashboard.SecurityRefreshSecs,
	} {
		check(secs >= 1 && secs <= 3600, field, "must be between 1 and 3600, got %d", secs)
	}
	check(c.Dashboard.NetworkNodes >= 3 && c.Dashboard.NetworkNodes <= 64,
		"dashboard.network_nodes", "must be between 3 and 64, got %d", c.Dashboard.NetworkNodes)

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		check(false, "ui.theme", "must be auto, dark or light, got %q", c.UI.Theme)
	}
	check(c.UI.ToastsPerSecond > 0 && c.UI.ToastsPerSecond <= 50,
		"ui.toasts_per_second", "must be in (0, 50], got %g", c.UI.ToastsPerSecond)
	check(c.UI.ToastBurst >= 1, "ui.toast_burst", "must be at least 1, got %d", c.UI.ToastBurst)

	for i, m := range c.Macros {
		field := fmt.Sprintf("macros[%d]", i)
		check(m.Name != "", field+".name", "must not be empty")
		check(!strings.ContainsFunc(m.Name, unicode.IsSpace), field+".name", "must be a single word, got %q", m.Name)
		check(m.Name == strings.ToLower(m.Name), field+".name", "must be lowercase, got %q", m.Name)
		check(len(m.Commands) > 0, field+".commands", "must not be empty")
		for j, line := range m.Commands {
			check(strings.TrimSpace(line) != "", fmt.Sprintf("%s.commands[%d]", field, j), "must not be blank")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - MCP_PROMPT: overrides console.prompt
//   - MCP_STEP_DELAY_MS: overrides console.playback_step_delay_ms
//   - MCP_THEME: overrides ui.theme
//   - MCP_SEED: overrides dashboard.seed
//   - MCP_NO_TOASTS: disables toasts when "1" or "true"
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("MCP_PROMPT"); prompt != "" {
		c.Console.Prompt = prompt
	}

	if delay := os.Getenv("MCP_STEP_DELAY_MS"); delay != "" {
		if ms, err := strconv.Atoi(delay); err == nil {
			c.Console.PlaybackStepDelayMs = ms
		} else {
			log.Printf("WARNING: ignoring MCP_STEP_DELAY_MS=%q: %v", delay, err)
		}
	}

	if theme := os.Getenv("MCP_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}

	if seed := os.Getenv("MCP_SEED"); seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Dashboard.Seed = n
		} else {
			log.Printf("WARNING: ignoring MCP_SEED=%q: %v", seed, err)
		}
	}

	if noToasts := os.Getenv("MCP_NO_TOASTS"); noToasts != "" {
		c.UI.ShowToasts = !(noToasts == "1" || strings.ToLower(noToasts) == "true")
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "console.prompt").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookupField(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookupField(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookupField(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Slice || field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is not a scalar", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// name ("playback_step_delay_ms" -> "PlaybackStepDelayMs").
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue assigns value to field, parsing strings for numeric and
// boolean fields.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns every scalar configuration key in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"console.prompt",
		"console.playback_step_delay_ms",
		"console.max_macro_depth",
		"console.history_limit",
		"dashboard.status_refresh_secs",
		"dashboard.resource_refresh_secs",
		"dashboard.security_refresh_secs",
		"dashboard.network_nodes",
		"dashboard.seed",
		"ui.theme",
		"ui.show_suggestions",
		"ui.show_payloads",
		"ui.show_toasts",
		"ui.toasts_per_second",
		"ui.toast_burst",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Macros != nil {
		clone.Macros = make([]MacroPreset, len(c.Macros))
		for i, m := range c.Macros {
			m.Commands = append([]string{}, m.Commands...)
			clone.Macros[i] = m
		}
	}
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
