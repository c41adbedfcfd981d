// Package mcp assembles the MCP server: tools, resources and prompts over
// the ZAP call table.
package mcp

import (
	"context"
	"errors"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/mcp/prompts"
	"github.com/usestring/zap-mcp/internal/mcp/tools"
)

// Version is reported to clients in the initialize handshake.
var Version = "0.1.0"

// Server is the ZAP MCP server.
type Server struct {
	srv  *sdkmcp.Server
	deps *tools.Deps
}

type features struct {
	tools   bool
	prompts bool
	extra   []func(*sdkmcp.Server)
}

// ServerOption selects what the server registers.
type ServerOption func(*features)

// WithBuiltinTools registers the zap_* tools and the call table resources.
func WithBuiltinTools() ServerOption {
	return func(f *features) { f.tools = true }
}

// WithBuiltinPrompts registers the workflow prompts.
func WithBuiltinPrompts() ServerOption {
	return func(f *features) { f.prompts = true }
}

// WithCustomRegistration runs fn against the SDK server after the builtins
// are registered.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(f *features) { f.extra = append(f.extra, fn) }
}

// NewServer builds the server over deps.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil || deps.Invoker == nil {
		return nil, errors.New("mcp: deps with an invoker are required")
	}
	var f features
	for _, opt := range opts {
		opt(&f)
	}

	srv := sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "zap-mcp", Version: Version},
		&sdkmcp.ServerOptions{Instructions: instructions(deps, f)},
	)
	srv.AddReceivingMiddleware(LoggingMiddleware())

	s := &Server{srv: srv, deps: deps}
	if f.tools {
		tools.Register(srv, deps)
		s.registerResources()
	}
	if f.prompts {
		prompts.Register(srv, &prompts.Config{
			APIKeyConfigured: deps.Invoker.Client().Connection().APIKey != "",
			ProxyVersion:     deps.Invoker.ProxyVersion(),
		})
	}
	for _, fn := range f.extra {
		fn(srv)
	}
	return s, nil
}

func instructions(deps *tools.Deps, f features) string {
	if !f.tools {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Controls a ZAP proxy through its API. Find calls with zap_find_calls, ")
	sb.WriteString("check their parameters with zap_describe_call, then run them with zap_call. ")
	sb.WriteString("zap_overview summarizes the proxy state in one request.")
	if deps.Invoker.Client().Connection().APIKey == "" {
		sb.WriteString(" No API key is configured, so actions may be refused.")
	}
	if v := deps.Invoker.ProxyVersion(); v != "" {
		sb.WriteString(" Calls newer than ZAP " + v + " are rejected.")
	}
	return sb.String()
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &sdkmcp.StdioTransport{})
}

// RunTransport serves over t.
func (s *Server) RunTransport(ctx context.Context, t sdkmcp.Transport) error {
	return s.srv.Run(ctx, t)
}

// Deps returns the dependencies the builtin tools use.
func (s *Server) Deps() *tools.Deps { return s.deps }

// MCPServer returns the SDK server.
func (s *Server) MCPServer() *sdkmcp.Server { return s.srv }
