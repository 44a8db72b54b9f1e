// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MEMDECK_HOME", dir)
	for _, key := range []string{"MEMDECK_BACKEND_URL", "MEMDECK_TIMEOUT", "MEMDECK_LOG_LEVEL", "MEMDECK_HISTORY_SIZE"} {
		t.Setenv(key, "")
	}
	return dir
}

// TestConfig_Default tests that Default() returns a valid config.
func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, 100, cfg.History.Size)
	assert.NoError(t, cfg.Validate())
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"ftp backend url", func(c *Config) { c.Backend.URL = "ftp://example.com" }, true},
		{"backend url without host", func(c *Config) { c.Backend.URL = "http://" }, true},
		{"https backend url", func(c *Config) { c.Backend.URL = "https://agents.example.com/api" }, false},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, true},
		{"negative rate limit", func(c *Config) { c.Backend.RateLimit = -1 }, true},
		{"rate limiting disabled", func(c *Config) { c.Backend.RateLimit = 0 }, false},
		{"invalid theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"history too small", func(c *Config) { c.History.Size = 0 }, true},
		{"history at maximum", func(c *Config) { c.History.Size = 10000 }, false},
		{"invalid log level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"search limit too large", func(c *Config) { c.Memory.SearchLimit = 500 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	c := Default()
	c.UI.Theme = "neon"
	c.Logging.Level = "loud"

	err := c.Validate()
	require.Error(t, err)

	var errs ValidateErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("backend.url")
	require.NoError(t, err)
	assert.Equal(t, DefaultBackendURL, val)

	require.NoError(t, cfg.Set("history.size", "250"))
	assert.Equal(t, 250, cfg.History.Size)

	require.NoError(t, cfg.Set("backend.rate_limit", "2.5"))
	assert.Equal(t, 2.5, cfg.Backend.RateLimit)

	require.NoError(t, cfg.Set("logging.compress", "no"))
	assert.False(t, cfg.Logging.Compress)

	require.NoError(t, cfg.Set("memory.search-limit", 20))
	assert.Equal(t, 20, cfg.Memory.SearchLimit)

	_, err = cfg.Get("invalid.key")
	assert.Error(t, err)

	_, err = cfg.Get("backend.url.scheme")
	assert.Error(t, err)

	assert.Error(t, cfg.Set("history.size", "lots"))
	assert.Error(t, cfg.Set("", "x"))
}

func TestConfig_AllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "key %s", key)
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.Backend.URL = "http://other:1"

	assert.Equal(t, DefaultBackendURL, original.Backend.URL)
	assert.Equal(t, "http://other:1", clone.Backend.URL)
}

// =============================================================================
// LOAD / SAVE TESTS
// =============================================================================

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOMLFillsDefaults(t *testing.T) {
	dir := isolate(t)
	data := "[backend]\nurl = \"http://agents:9000\"\n\n[history]\nsize = 50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://agents:9000", cfg.Backend.URL)
	assert.Equal(t, 50, cfg.History.Size)
	assert.Equal(t, 60, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAML(t *testing.T) {
	dir := isolate(t)
	data := "backend:\n  url: http://yaml-host:8000\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://yaml-host:8000", cfg.Backend.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_TOMLBeatsJSON(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"backend":{"url":"http://json:1"}}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[backend]\nurl = \"http://toml:1\"\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://toml:1", cfg.Backend.URL)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MEMDECK_BACKEND_URL", "http://env-host:7000")
	t.Setenv("MEMDECK_TIMEOUT", "15")
	t.Setenv("MEMDECK_LOG_LEVEL", "DEBUG")
	t.Setenv("MEMDECK_HISTORY_SIZE", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://env-host:7000", cfg.Backend.URL)
	assert.Equal(t, 15, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.History.Size)
}

func TestSaveFile_RoundTripsEachFormat(t *testing.T) {
	dir := isolate(t)

	for _, name := range []string{"config.toml", "config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Backend.URL = "http://saved:8000"
			cfg.History.Size = 42

			path := filepath.Join(dir, name)
			require.NoError(t, SaveFile(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestActivePath(t *testing.T) {
	dir := isolate(t)

	path, err := ActivePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0600))
	path, err = ActivePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}

// =============================================================================
// WATCHER TESTS
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	updated := Default()
	updated.Backend.URL = "http://reloaded:8000"
	require.NoError(t, SaveTOML(updated, path))

	select {
	case cfg := <-changes:
		assert.Equal(t, "http://reloaded:8000", cfg.Backend.URL)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	called := make(chan struct{}, 1)
	w, err := NewWatcher(path, 10*time.Millisecond, func(*Config, error) {
		select {
		case called <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	select {
	case <-called:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}
