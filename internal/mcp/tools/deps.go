package tools

import (
	"fmt"

	"github.com/usestring/zap-mcp/internal/cache"
	"github.com/usestring/zap-mcp/internal/catalog"
	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/internal/query"
	"github.com/usestring/zap-mcp/internal/schema"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zap"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Invoker *calltable.Invoker
	ZAP     *zap.ZAP
	Catalog *catalog.Index
	Query   *query.Engine
	Config  *config.Config

	validators *cache.Cache[*schema.Validator]
}

// NewDeps wires the engines around an invoker. The catalog is built from
// the invoker's table.
func NewDeps(inv *calltable.Invoker, cfg *config.Config) (*Deps, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	engine, err := query.NewEngine(cfg.JQCacheSize)
	if err != nil {
		return nil, err
	}
	validators, err := cache.New[*schema.Validator](inv.Table().Len() + 1)
	if err != nil {
		return nil, fmt.Errorf("creating validator cache: %w", err)
	}

	return &Deps{
		Invoker:    inv,
		ZAP:        zap.New(inv.Client(), zap.WithTable(inv.Table())),
		Catalog:    catalog.Build(inv.Table()),
		Query:      engine,
		Config:     cfg,
		validators: validators,
	}, nil
}

// ValidateArgs checks args against the call's argument schema. Validators
// are compiled once per call.
func (d *Deps) ValidateArgs(call calltable.Call, args map[string]any) error {
	v, err := d.validators.GetOrCreate(call.Name(), func() (*schema.Validator, error) {
		return schema.NewValidator(call.ArgumentSchema())
	})
	if err != nil {
		return fmt.Errorf("compiling argument schema for %s: %w", call.Name(), err)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := v.ValidateValue(args).Err(); err != nil {
		return ErrInvalidInput(fmt.Sprintf("arguments for %s: %v", call.Name(), err))
	}
	return nil
}
