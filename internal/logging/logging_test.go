// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/memdeck/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	cfg := config.Default().Logging
	cfg.File = path

	logger, cleanup, err := New(cfg, false)
	require.NoError(t, err)

	logger.Info("dispatch finished", zap.String("command", "memory"))
	logger.Debug("suppressed at info level")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"dispatch finished"`)
	assert.Contains(t, string(data), `"command":"memory"`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cfg := config.Default().Logging
	cfg.File = path

	logger, cleanup, err := New(cfg, true)
	require.NoError(t, err)
	logger.Debug("visible")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	cfg := config.Default().Logging
	cfg.Level = "chatty"
	cfg.File = filepath.Join(t.TempDir(), "x.log")

	_, _, err := New(cfg, false)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "level %q", tt.in)
	}
}

func TestFilePath_DefaultsToConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMDECK_HOME", dir)

	path, err := FilePath(config.LoggingConfig{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), path)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
