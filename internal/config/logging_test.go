package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrz1836/stakeview/internal/config"
)

func readLogFile(t *testing.T, path string) string {
	t.Helper()
	// #nosec G304 -- test file path
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]config.LogLevel{
		"off":     config.LogLevelOff,
		"none":    config.LogLevelOff,
		"error":   config.LogLevelError,
		" DEBUG ": config.LogLevelDebug,
		"verbose": config.LogLevelError,
		"":        config.LogLevelError,
	}
	for in, want := range tests {
		assert.Equal(t, want, config.ParseLogLevel(in), in)
	}
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevel(42).String())
}

func TestNewLogger_Disabled(t *testing.T) {
	t.Parallel()

	logger, err := config.NewLogger(config.LogLevelOff, filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	assert.Nil(t, logger.Structured())
	require.NoError(t, logger.Close())

	logger, err = config.NewLogger(config.LogLevelDebug, "")
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Debug("dropped %d", 1) })
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "nested", "stakeview.log")

	logger, err := config.NewLogger(config.LogLevelDebug, logPath)
	require.NoError(t, err)

	logger.Debug("fetched %d pools", 3)
	logger.Error("fetch failed: %s", "timeout")
	require.NoError(t, logger.Close())

	content := readLogFile(t, logPath)
	assert.Contains(t, content, "DEBUG")
	assert.Contains(t, content, "fetched 3 pools")
	assert.Contains(t, content, "ERROR")
	assert.Contains(t, content, "fetch failed: timeout")
}

func TestNewLogger_InvalidPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := config.NewLogger(config.LogLevelError, filepath.Join(blocker, "sub", "x.log"))
	require.Error(t, err)
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := config.NewWriterLogger(config.LogLevelError, &buf)
	logger.Debug("hidden")
	logger.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	logger.SetLevel(config.LogLevelDebug)
	assert.Equal(t, config.LogLevelDebug, logger.Level())
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	logger.SetLevel(config.LogLevelOff)
	logger.Error("silenced")
	assert.NotContains(t, buf.String(), "silenced")
}

func TestLogger_JSONOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := config.NewWriterLogger(config.LogLevelDebug, &buf)
	logger.SetJSONOutput(true)
	logger.DebugAttrs("pool fetch", zap.Int("count", 2), zap.String("cluster", "devnet"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"pool fetch"`)
	assert.Contains(t, out, `"count":2`)
	assert.Contains(t, out, `"cluster":"devnet"`)
	require.NotNil(t, logger.Structured())
}

func TestLogger_ErrorAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := config.NewWriterLogger(config.LogLevelError, &buf)
	logger.DebugAttrs("not shown")
	logger.ErrorAttrs("rpc failed", zap.String("method", "getProgramAccounts"))

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "getProgramAccounts")
}

func TestLogger_Writer(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := config.NewWriterLogger(config.LogLevelDebug, &buf)
	n, err := logger.Writer(config.LogLevelDebug).Write([]byte("  from writer \n"))
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Contains(t, buf.String(), "from writer")
}

func TestNullLogger(t *testing.T) {
	t.Parallel()

	logger := config.NullLogger()
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Error("y")
		logger.ErrorAttrs("z")
	})
	assert.Nil(t, logger.Structured())
	assert.Equal(t, config.LogLevelOff, logger.Level())
	require.NoError(t, logger.Close())
}
