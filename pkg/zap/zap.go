// Package zap provides typed accessors over the ZAP API.
//
// Each accessor method resolves its entry in a call table, which supplies the
// result key, and calls the generic zapapi dispatcher with a concrete result
// type:
//
//	z := zap.New(zapapi.New(zapapi.WithAPIKey(key)))
//	id, err := z.Ascan.Scan(ctx, "https://example.com", zap.ScanOptions{})
//	progress, err := z.Ascan.Status(ctx, id)
//
// Calls not covered here are reachable through calltable.Invoker.
package zap

import (
	"context"
	"fmt"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// ZAP groups the accessors by component.
type ZAP struct {
	Core       *Core
	Ascan      *Ascan
	Spider     *Spider
	AjaxSpider *AjaxSpider
	Context    *Context
	Search     *Search
	Users      *Users
	Alert      *Alert
	Reports    *Reports

	client *zapapi.Client
	table  *calltable.Table
}

// Option configures New.
type Option func(*options)

type options struct {
	table *calltable.Table
}

// WithTable resolves result keys from t instead of the builtin table.
func WithTable(t *calltable.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// New returns accessors bound to c.
func New(c *zapapi.Client, opts ...Option) *ZAP {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.table == nil {
		o.table = calltable.Builtin()
	}

	b := func(component string) base {
		return base{client: c, table: o.table, comp: c.Component(component)}
	}
	return &ZAP{
		Core:       &Core{b("core")},
		Ascan:      &Ascan{b("ascan")},
		Spider:     &Spider{b("spider")},
		AjaxSpider: &AjaxSpider{b("ajaxSpider")},
		Context:    &Context{b("context")},
		Search:     &Search{b("search")},
		Users:      &Users{b("users")},
		Alert:      &Alert{b("alert")},
		Reports:    &Reports{core: b("core"), reports: b("reports")},
		client:     c,
		table:      o.table,
	}
}

// Client returns the underlying dispatcher.
func (z *ZAP) Client() *zapapi.Client { return z.client }

// Table returns the call table used for resolution.
func (z *ZAP) Table() *calltable.Table { return z.table }

type base struct {
	client *zapapi.Client
	table  *calltable.Table
	comp   zapapi.Component
}

func (b base) lookup(kind zapapi.CallKind, method string) (calltable.Call, error) {
	c, ok := b.table.Find(b.comp.Name, kind, method)
	if !ok {
		return calltable.Call{}, fmt.Errorf("%w: %s/%s/%s", calltable.ErrUnknownCall, b.comp.Name, kind, method)
	}
	return c, nil
}

func view[T any](ctx context.Context, b base, method string, params *zapapi.Params) (T, error) {
	c, err := b.lookup(zapapi.View, method)
	if err != nil {
		var zero T
		return zero, err
	}
	return zapapi.CallView[T](ctx, b.client, b.comp, method, c.ResultKey, params)
}

func actionResult[T any](ctx context.Context, b base, method string, params *zapapi.Params) (T, error) {
	c, err := b.lookup(zapapi.Action, method)
	if err != nil {
		var zero T
		return zero, err
	}
	return zapapi.CallActionResult[T](ctx, b.client, b.comp, method, c.ResultKey, params)
}

func (b base) action(ctx context.Context, method string, params *zapapi.Params) error {
	if _, err := b.lookup(zapapi.Action, method); err != nil {
		return err
	}
	return b.client.CallAction(ctx, b.comp, method, params)
}

// list fetches a view whose result is a legacy "[a, b]" string.
func (b base) list(ctx context.Context, method string, params *zapapi.Params) ([]string, error) {
	s, err := view[string](ctx, b, method, params)
	if err != nil {
		return nil, err
	}
	return zapapi.ParseListString(s), nil
}

func (b base) other(ctx context.Context, method string, params *zapapi.Params) (string, error) {
	c, err := b.lookup(zapapi.Other, method)
	if err != nil {
		return "", err
	}
	if c.RequiresKey {
		params = zapapi.InjectAPIKey(params, b.comp.APIKey)
	}
	return b.client.CallOther(ctx, b.comp, method, params)
}

func (b base) otherData(ctx context.Context, method string, params *zapapi.Params) ([]byte, error) {
	c, err := b.lookup(zapapi.Other, method)
	if err != nil {
		return nil, err
	}
	if c.RequiresKey {
		params = zapapi.InjectAPIKey(params, b.comp.APIKey)
	}
	return b.client.CallOtherData(ctx, b.comp, method, params)
}

// Bool returns a pointer to v, for optional flags.
func Bool(v bool) *bool { return &v }

func setOptBool(p *zapapi.Params, key string, v *bool) {
	if v != nil {
		p.SetBool(key, *v)
	}
}

func setPositive(p *zapapi.Params, key string, v int) {
	if v > 0 {
		p.SetInt(key, v)
	}
}

// Page restricts list views to a window of results.
type Page struct {
	BaseURL string
	Start   int
	Count   int
}

func (pg Page) params() *zapapi.Params {
	p := zapapi.NewParams().SetIf("baseurl", pg.BaseURL)
	setPositive(p, "start", pg.Start)
	setPositive(p, "count", pg.Count)
	return p
}
