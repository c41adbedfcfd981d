package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/pkg/calltable"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config
	table  *calltable.Table

	// Overrides of the environment configuration
	logLevel        string
	logFile         string
	proxyVersion    *string
	strictLegacy    *bool
	exposeCallTools *bool

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Registrations run after the builtins, in option order. Each gets the
	// SDK server and the resolved Deps.
	extensions []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg *config.Config) Option {
	return func(sc *serverConfig) {
		sc.config = cfg
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithCallTable serves t instead of the builtin table (and any
// ZAP_CALLTABLE_FILE).
func WithCallTable(t *calltable.Table) Option {
	return func(cfg *serverConfig) {
		cfg.table = t
	}
}

// WithProxyVersion enables version gating of calls against version.
func WithProxyVersion(version string) Option {
	return func(cfg *serverConfig) {
		cfg.proxyVersion = &version
	}
}

// WithStrictLegacy refuses legacy calls instead of logging a warning.
func WithStrictLegacy(strict bool) Option {
	return func(cfg *serverConfig) {
		cfg.strictLegacy = &strict
	}
}

// WithCallTools registers one tool per table call in addition to zap_call.
func WithCallTools(enabled bool) Option {
	return func(cfg *serverConfig) {
		cfg.exposeCallTools = &enabled
	}
}

// WithoutBuiltinTools disables all builtin ZAP tools.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin ZAP prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// extend queues a registration.
func extend(fn func(*mcp.Server, *Deps)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, fn)
	}
}

// WithTool registers a custom tool. The handler follows the SDK's typed
// pattern; its output type is checked like the builtin tools' (see AddTool).
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "echo_target", Description: "Echo a target URL"},
//	    func(ctx context.Context, req *mcp.CallToolRequest, in TargetInput) (*mcp.CallToolResult, TargetOutput, error) {
//	        return nil, TargetOutput{URL: in.URL}, nil
//	    })
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return extend(func(srv *mcp.Server, _ *Deps) {
		AddTool(srv, tool, handler)
	})
}

// WithDepsTool registers a custom tool built from Deps. Use it when the tool
// needs the ZAP client, the invoker or the typed accessors.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "alert_count", Description: "Count alerts for a site"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in SiteInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in SiteInput) (*mcp.CallToolResult, CountOutput, error) {
//	            f := zap.NewAlertFilter()
//	            f.BaseURL = in.BaseURL
//	            n, err := d.ZAP.Alert.Count(ctx, f)
//	            return nil, CountOutput{Count: n}, err
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return extend(func(srv *mcp.Server, deps *Deps) {
		AddTool(srv, tool, builder(deps))
	})
}

// WithPrompt registers a custom prompt.
func WithPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) Option {
	return extend(func(srv *mcp.Server, _ *Deps) {
		srv.AddPrompt(prompt, handler)
	})
}

// WithResourceTemplate registers a custom resource template, e.g. one that
// serves zap://report/{template} through the reports component.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) Option {
	return extend(func(srv *mcp.Server, _ *Deps) {
		srv.AddResourceTemplate(template, handler)
	})
}
