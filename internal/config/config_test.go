package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", c.ZAPHost)
	assert.Equal(t, 8080, c.ZAPPort)
	assert.Empty(t, c.ZAPAPIKey)
	assert.Equal(t, 30*time.Second, c.HTTPClientTimeout)
	assert.False(t, c.ExposeCallTools)
	assert.Equal(t, 200000, c.ResultMaxBytes)
	assert.Equal(t, 128, c.JQCacheSize)
	assert.Equal(t, "text", c.LogFormat)
	assert.True(t, c.LogCompress)
	assert.Equal(t, 25, c.Compaction().MaxArrayItems)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ZAP_HOST", "zap.internal")
	t.Setenv("ZAP_PORT", "8090")
	t.Setenv("ZAP_API_KEY", "k")
	t.Setenv("ZAP_VERSION", "2.14.0")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "5s")
	t.Setenv("ZAP_STRICT_LEGACY", "true")
	t.Setenv("LOG_FORMAT", "json")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "zap.internal", c.ZAPHost)
	assert.Equal(t, 8090, c.ZAPPort)
	assert.Equal(t, "k", c.ZAPAPIKey)
	assert.Equal(t, "2.14.0", c.ZAPVersion)
	assert.Equal(t, 5*time.Second, c.HTTPClientTimeout)
	assert.True(t, c.StrictLegacy)
	assert.Equal(t, "json", c.Logging().Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, msg string
	}{
		{"port not a number", "ZAP_PORT", "http", "ZAP_PORT"},
		{"port out of range", "ZAP_PORT", "70000", "ZAP_PORT"},
		{"zero timeout", "HTTP_CLIENT_TIMEOUT", "0s", "HTTP_CLIENT_TIMEOUT"},
		{"log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestConfig_ClientAndInvoker(t *testing.T) {
	t.Setenv("ZAP_HOST", "zap.internal")
	t.Setenv("ZAP_PORT", "8090")
	t.Setenv("ZAP_API_KEY", "k")
	t.Setenv("ZAP_VERSION", "2.10.0")
	c, err := Load()
	require.NoError(t, err)

	client := c.Client()
	assert.Equal(t, "zap.internal", client.Connection().Host)
	assert.Equal(t, 8090, client.Connection().Port)
	assert.Equal(t, "k", client.Connection().APIKey)

	table, err := c.CallTable()
	require.NoError(t, err)
	inv := c.Invoker(client, table)
	assert.Equal(t, "2.10.0", inv.ProxyVersion())
	_, err = inv.Resolve("reports/action/generate")
	assert.Error(t, err, "reports need 2.11.0")
}

func TestConfig_CallTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calls:\n  - component: custom\n    kind: view\n    method: ping\n    result_key: pong\n"), 0o600))
	t.Setenv("ZAP_CALLTABLE_FILE", path)

	c, err := Load()
	require.NoError(t, err)
	table, err := c.CallTable()
	require.NoError(t, err)
	_, ok := table.Lookup("custom/view/ping")
	assert.True(t, ok)

	c.CallTableFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = c.CallTable()
	assert.Error(t, err)
}
