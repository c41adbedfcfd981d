package mcpsrv

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/internal/logging"
	"github.com/usestring/zap-mcp/internal/mcp"
	"github.com/usestring/zap-mcp/internal/mcp/tools"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Server is the ZAP MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a server over c with the builtin ZAP tools, resources
// and prompts. c is used as given; connection settings in the environment do
// not apply to it. Everything else comes from the environment unless an
// option overrides it.
func NewServer(c *zapapi.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, errors.New("mcpsrv: client is required")
	}
	sc := &serverConfig{}
	for _, opt := range opts {
		opt(sc)
	}
	appCfg, err := sc.resolve()
	if err != nil {
		return nil, err
	}

	logCfg := appCfg.Logging()
	if sc.logLevel != "" {
		logCfg.Level = sc.logLevel
	}
	if sc.logFile != "" {
		logCfg.FilePath = sc.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	srv, err := build(c, appCfg, sc)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}
	srv.logCleanup = logCleanup
	return srv, nil
}

// resolve returns the effective configuration: the given or loaded config
// with option overrides applied. The caller's config is never modified.
func (sc *serverConfig) resolve() (*config.Config, error) {
	base := sc.config
	if base == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	cfg := *base
	if sc.proxyVersion != nil {
		cfg.ZAPVersion = *sc.proxyVersion
	}
	if sc.strictLegacy != nil {
		cfg.StrictLegacy = *sc.strictLegacy
	}
	if sc.exposeCallTools != nil {
		cfg.ExposeCallTools = *sc.exposeCallTools
	}
	return &cfg, nil
}

func build(c *zapapi.Client, cfg *config.Config, sc *serverConfig) (*Server, error) {
	table := sc.table
	if table == nil {
		var err error
		if table, err = cfg.CallTable(); err != nil {
			return nil, err
		}
	}
	toolDeps, err := tools.NewDeps(cfg.Invoker(c, table), cfg)
	if err != nil {
		return nil, fmt.Errorf("creating tool dependencies: %w", err)
	}
	deps := &Deps{
		Client:  c,
		Invoker: toolDeps.Invoker,
		ZAP:     toolDeps.ZAP,
		Catalog: toolDeps.Catalog,
		Query:   toolDeps.Query,
		Config:  toolDeps.Config,
	}

	var internalOpts []mcp.ServerOption
	if !sc.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !sc.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range sc.extensions {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, err
	}
	return &Server{internal: internal, deps: deps}, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// RunTransport serves MCP over t, e.g. an in-memory transport in tests.
func (s *Server) RunTransport(ctx context.Context, t sdkmcp.Transport) error {
	return s.internal.RunTransport(ctx, t)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
