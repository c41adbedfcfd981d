// Package config provides configuration loading from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/usestring/zap-mcp/internal/logging"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/jsoncompact"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Config holds all configuration for the MCP server and the CLI.
type Config struct {
	// Proxy connection
	ZAPHost   string `envconfig:"ZAP_HOST" default:"localhost"`
	ZAPPort   int    `envconfig:"ZAP_PORT" default:"8080"`
	ZAPAPIKey string `envconfig:"ZAP_API_KEY"`
	// ZAPVersion enables since-version gating of calls (empty = no gating).
	ZAPVersion string `envconfig:"ZAP_VERSION"`

	// Call table
	CallTableFile string `envconfig:"ZAP_CALLTABLE_FILE"`
	StrictLegacy  bool   `envconfig:"ZAP_STRICT_LEGACY" default:"false"`

	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`

	// Tool output
	ExposeCallTools bool `envconfig:"MCP_EXPOSE_CALL_TOOLS" default:"false"`
	ResultMaxBytes  int  `envconfig:"RESULT_MAX_BYTES" default:"200000"`
	JQCacheSize     int  `envconfig:"JQ_CACHE_SIZE" default:"128"`

	// Compaction (for AI-optimized responses)
	CompactMaxArrayItems int `envconfig:"COMPACT_MAX_ARRAY_ITEMS" default:"25"`
	CompactMaxStringLen  int `envconfig:"COMPACT_MAX_STRING_LEN" default:"2000"`
	CompactMaxDepth      int `envconfig:"COMPACT_MAX_DEPTH" default:"0"`

	// Logging
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"text"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28"`
	LogCompress   bool   `envconfig:"LOG_COMPRESS" default:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges envconfig cannot express.
func (c *Config) Validate() error {
	switch {
	case c.ZAPPort <= 0 || c.ZAPPort > 65535:
		return fmt.Errorf("ZAP_PORT must be between 1 and 65535, got %d", c.ZAPPort)
	case c.HTTPClientTimeout <= 0:
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	case c.ResultMaxBytes <= 0:
		return fmt.Errorf("RESULT_MAX_BYTES must be positive")
	case c.JQCacheSize <= 0:
		return fmt.Errorf("JQ_CACHE_SIZE must be positive")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Logging returns the logging configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

// Compaction returns the compaction options.
func (c *Config) Compaction() jsoncompact.Options {
	return jsoncompact.Options{
		MaxArrayItems: c.CompactMaxArrayItems,
		MaxStringLen:  c.CompactMaxStringLen,
		MaxDepth:      c.CompactMaxDepth,
	}
}

// Client returns a ZAP client for the configured proxy. opts are applied
// last, so they can replace the transport.
func (c *Config) Client(opts ...zapapi.Option) *zapapi.Client {
	base := []zapapi.Option{
		zapapi.WithProxy(c.ZAPHost, c.ZAPPort),
		zapapi.WithAPIKey(c.ZAPAPIKey),
		zapapi.WithTimeout(c.HTTPClientTimeout),
	}
	return zapapi.New(append(base, opts...)...)
}

// CallTable returns the builtin table, extended with CallTableFile when set.
func (c *Config) CallTable() (*calltable.Table, error) {
	if c.CallTableFile == "" {
		return calltable.Builtin(), nil
	}
	t, err := calltable.Extend(calltable.Builtin(), c.CallTableFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.CallTableFile, err)
	}
	return t, nil
}

// Invoker returns an invoker over t with the configured version gating and
// legacy policy.
func (c *Config) Invoker(client *zapapi.Client, t *calltable.Table) *calltable.Invoker {
	return calltable.NewInvoker(client, t,
		calltable.WithProxyVersion(c.ZAPVersion),
		calltable.WithStrictLegacy(c.StrictLegacy),
	)
}
