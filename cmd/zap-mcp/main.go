package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connection, call table, logging and tool output limits come from the
	// environment (ZAP_HOST, ZAP_PORT, ZAP_API_KEY, ...; see internal/config).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	server, err := mcpsrv.NewServer(cfg.Client(), mcpsrv.WithConfig(cfg))
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting ZAP MCP server on stdio",
		"proxy", cfg.ZAPHost, "port", cfg.ZAPPort,
		"calls", server.Deps().Invoker.Table().Len(),
	)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
