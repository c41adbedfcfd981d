package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "zap-mcp.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.FilePath = path

	logger, cleanup, err := New(cfg)
	require.NoError(t, err)
	logger.Info("ZAP call completed", "call", "core/view/version")
	logger.Debug("dropped below level")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "ZAP call completed", rec["msg"])
	assert.Equal(t, "core/view/version", rec["call"])
}

func TestNew_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zap.log")
	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Level = "debug"

	logger, cleanup, err := New(cfg)
	require.NoError(t, err)
	logger.Debug("request", "path", "json/core/view/hosts")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=request")
	assert.Contains(t, string(data), "path=json/core/view/hosts")
}
