package mcpsrv

import (
	"github.com/usestring/zap-mcp/internal/catalog"
	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/internal/query"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zap"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client  *zapapi.Client
	Invoker *calltable.Invoker
	ZAP     *zap.ZAP
	Catalog *catalog.Index
	Query   *query.Engine
	Config  *config.Config
}
