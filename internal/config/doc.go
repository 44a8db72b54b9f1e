// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for memdeck.
//
// Supports TOML, YAML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Backend URL, timeout and request rate limit
//   - LoggingConfig: Log level and rotation settings
//   - Watcher: Reloads the config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MEMDECK_*)
//   - ~/.memdeck/config.toml
//   - ~/.memdeck/config.yaml
//   - ~/.memdeck/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read and write settings by key, as /config does:
//
//	v, _ := cfg.Get("backend.url")
//	_ = cfg.Set("history.size", "200")
package config
