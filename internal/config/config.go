// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/memdeck/internal/util"
)

// DefaultBackendURL is used when backend.url is unset.
const DefaultBackendURL = "http://localhost:8000"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete memdeck configuration.
type Config struct {
	// Backend is the agent API the console talks to
	Backend BackendConfig `toml:"backend" json:"backend" yaml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`

	// History configuration
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Memory command defaults
	Memory MemoryConfig `toml:"memory" json:"memory" yaml:"memory"`
}

// BackendConfig contains backend connection settings.
type BackendConfig struct {
	// URL is the backend base URL, e.g. http://localhost:8000
	URL string `toml:"url" json:"url" yaml:"url"`
	// TimeoutSecs bounds each HTTP request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" yaml:"timeout_secs"`
	// RateLimit is the sustained request rate per second (0 disables limiting)
	RateLimit float64 `toml:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	// Burst is the number of requests allowed above RateLimit
	Burst int `toml:"burst" json:"burst" yaml:"burst"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
	// GlamourStyle overrides the markdown style ("auto", "dark", "light", "notty")
	GlamourStyle string `toml:"glamour_style" json:"glamour_style" yaml:"glamour_style"`
	// MaxSuggestions caps the rows shown in the suggestion popup
	MaxSuggestions int `toml:"max_suggestions" json:"max_suggestions" yaml:"max_suggestions"`
}

// HistoryConfig contains input history settings.
type HistoryConfig struct {
	// Size is the number of inputs kept per session
	Size int `toml:"size" json:"size" yaml:"size"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level" yaml:"level"`
	// File is the log file path; empty means ~/.memdeck/memdeck.log
	File string `toml:"file" json:"file" yaml:"file"`
	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `toml:"max_backups" json:"max_backups" yaml:"max_backups"`
	// MaxAgeDays is the age after which rotated files are removed
	MaxAgeDays int `toml:"max_age_days" json:"max_age_days" yaml:"max_age_days"`
	// Compress gzips rotated files
	Compress bool `toml:"compress" json:"compress" yaml:"compress"`
}

// MemoryConfig contains defaults for the /memory command.
type MemoryConfig struct {
	// SearchLimit is the default result count for searches and lists
	SearchLimit int `toml:"search_limit" json:"search_limit" yaml:"search_limit"`
	// DefaultType is the memory_type used by /memory store
	DefaultType string `toml:"default_type" json:"default_type" yaml:"default_type"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:         DefaultBackendURL,
			TimeoutSecs: 60,
			RateLimit:   5,
			Burst:       10,
		},

		UI: UIConfig{
			Theme:          "dark",
			GlamourStyle:   "auto",
			MaxSuggestions: 8,
		},

		History: HistoryConfig{
			Size: 100,
		},

		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},

		Memory: MemoryConfig{
			SearchLimit: 10,
			DefaultType: "semantic",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the memdeck configuration directory path.
// MEMDECK_HOME overrides the default of ~/.memdeck.
func ConfigDir() (string, error) {
	if dir := os.Getenv("MEMDECK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".memdeck"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return configPath("config.toml")
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	return configPath("config.yaml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return configPath("config.json")
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ActivePath returns the config file Load would read, or the TOML path when
// no file exists yet.
func ActivePath() (string, error) {
	for _, fn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML, ConfigPathJSON} {
		path, err := fn()
		if err != nil {
			return "", err
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
	}
	return ConfigPathTOML()
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found.
// Tries TOML, then YAML, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ActivePath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML loads configuration from a YAML file.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
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

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension; unknown extensions are
// read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SetDefaults fills in any zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	// Backend
	if strings.TrimSpace(c.Backend.URL) == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.Burst == 0 {
		c.Backend.Burst = defaults.Backend.Burst
	}

	// UI
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.GlamourStyle == "" {
		c.UI.GlamourStyle = defaults.UI.GlamourStyle
	}
	if c.UI.MaxSuggestions == 0 {
		c.UI.MaxSuggestions = defaults.UI.MaxSuggestions
	}

	// History
	if c.History.Size == 0 {
		c.History.Size = defaults.History.Size
	}

	// Logging
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = defaults.Logging.MaxAgeDays
	}

	// Memory
	if c.Memory.SearchLimit == 0 {
		c.Memory.SearchLimit = defaults.Memory.SearchLimit
	}
	if c.Memory.DefaultType == "" {
		c.Memory.DefaultType = defaults.Memory.DefaultType
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the active config file, creating the TOML
// file if none exists.
func Save(cfg *Config) error {
	path, err := ActivePath()
	if err != nil {
		return err
	}
	return SaveFile(cfg, path)
}

// SaveFile writes the configuration in the format implied by path's extension.
func SaveFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(cfg, path)
	case ".yaml", ".yml":
		return SaveYAML(cfg, path)
	default:
		return SaveTOML(cfg, path)
	}
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# memdeck configuration file\n")
	buf.WriteString("# Generated by memdeck - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return writeConfig(path, buf.Bytes())
}

// SaveYAML saves the configuration to a YAML file.
func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return writeConfig(path, data)
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return writeConfig(path, data)
}

// writeConfig writes data atomically with owner-only permissions.
func writeConfig(path string, data []byte) error {
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := ValidateBackendURL(c.Backend.URL); err != nil {
		errs = append(errs, ValidationError{Field: "backend.url", Message: err.Error()})
	}
	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 3600, got %d", c.Backend.TimeoutSecs),
		})
	}
	if c.Backend.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "backend.rate_limit", Message: "must not be negative"})
	}
	if c.Backend.Burst < 1 {
		errs = append(errs, ValidationError{Field: "backend.burst", Message: "must be at least 1"})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.MaxSuggestions < 1 {
		errs = append(errs, ValidationError{Field: "ui.max_suggestions", Message: "must be at least 1"})
	}

	if c.History.Size < 1 || c.History.Size > 10000 {
		errs = append(errs, ValidationError{
			Field:   "history.size",
			Message: fmt.Sprintf("must be between 1 and 10000, got %d", c.History.Size),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if c.Memory.SearchLimit < 1 || c.Memory.SearchLimit > 100 {
		errs = append(errs, ValidationError{
			Field:   "memory.search_limit",
			Message: fmt.Sprintf("must be between 1 and 100, got %d", c.Memory.SearchLimit),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBackendURL checks that raw is an absolute http(s) URL.
func ValidateBackendURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got '%s'", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: '%s'", raw)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//   - MEMDECK_BACKEND_URL: overrides backend.url
//   - MEMDECK_TIMEOUT: overrides backend.timeout_secs
//   - MEMDECK_LOG_LEVEL: overrides logging.level
//   - MEMDECK_HISTORY_SIZE: overrides history.size
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("MEMDECK_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}

	if timeout := os.Getenv("MEMDECK_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}

	if level := os.Getenv("MEMDECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}

	if size := os.Getenv("MEMDECK_HISTORY_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.History.Size = n
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct tree following a dotted key.
func (c *Config) lookup(key string) (reflect.Value, error) {
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
// equivalent ("timeout_secs" -> "TimeoutSecs").
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
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

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"backend.url",
		"backend.timeout_secs",
		"backend.rate_limit",
		"backend.burst",
		"ui.theme",
		"ui.glamour_style",
		"ui.max_suggestions",
		"history.size",
		"logging.level",
		"logging.file",
		"logging.max_size_mb",
		"logging.max_backups",
		"logging.max_age_days",
		"logging.compress",
		"memory.search_limit",
		"memory.default_type",
	}
}

// Clone returns a copy of the configuration. Config holds only value types,
// so a struct copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns an indented JSON rendering of the config.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
