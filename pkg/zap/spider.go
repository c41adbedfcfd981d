package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Spider wraps the traditional spider.
type Spider struct{ base }

// SpiderOptions are the optional arguments of a spider scan.
type SpiderOptions struct {
	MaxChildren int
	Recurse     *bool
	ContextName string
	SubtreeOnly *bool
}

// Scan starts a spider scan of url and returns its ID.
func (s *Spider) Scan(ctx context.Context, url string, opts SpiderOptions) (int, error) {
	p := zapapi.NewParams().SetIf("url", url)
	setPositive(p, "maxChildren", opts.MaxChildren)
	setOptBool(p, "recurse", opts.Recurse)
	p.SetIf("contextName", opts.ContextName)
	setOptBool(p, "subtreeOnly", opts.SubtreeOnly)
	return actionResult[int](ctx, s.base, "scan", p)
}

// Status returns the progress percentage of scan id.
func (s *Spider) Status(ctx context.Context, id int) (int, error) {
	return view[int](ctx, s.base, "status", scanID(id))
}

// Results returns the URLs found by scan id.
func (s *Spider) Results(ctx context.Context, id int) ([]string, error) {
	return view[[]string](ctx, s.base, "results", scanID(id))
}

// Scans lists spider scans.
func (s *Spider) Scans(ctx context.Context) ([]ScanInfo, error) {
	return view[[]ScanInfo](ctx, s.base, "scans", nil)
}

// Stop stops scan id.
func (s *Spider) Stop(ctx context.Context, id int) error {
	return s.action(ctx, "stop", scanID(id))
}

// RemoveAll removes every spider scan.
func (s *Spider) RemoveAll(ctx context.Context) error {
	return s.action(ctx, "removeAllScans", nil)
}

// AjaxSpider wraps the browser-driven spider. It runs one crawl at a time.
type AjaxSpider struct{ base }

// AjaxOptions are the optional arguments of an AJAX spider crawl.
type AjaxOptions struct {
	InScope     *bool
	ContextName string
	SubtreeOnly *bool
}

// Scan starts a crawl of url.
func (a *AjaxSpider) Scan(ctx context.Context, url string, opts AjaxOptions) error {
	p := zapapi.NewParams().SetIf("url", url)
	setOptBool(p, "inScope", opts.InScope)
	p.SetIf("contextName", opts.ContextName)
	setOptBool(p, "subtreeOnly", opts.SubtreeOnly)
	return a.action(ctx, "scan", p)
}

// Status returns "running" or "stopped".
func (a *AjaxSpider) Status(ctx context.Context) (string, error) {
	return view[string](ctx, a.base, "status", nil)
}

// NumberOfResults counts the messages found so far.
func (a *AjaxSpider) NumberOfResults(ctx context.Context) (int, error) {
	return view[int](ctx, a.base, "numberOfResults", nil)
}

// Results returns a window of the messages found, as returned by the proxy.
func (a *AjaxSpider) Results(ctx context.Context, start, count int) ([]map[string]any, error) {
	p := zapapi.NewParams()
	setPositive(p, "start", start)
	setPositive(p, "count", count)
	return view[[]map[string]any](ctx, a.base, "results", p)
}

// Stop stops the crawl.
func (a *AjaxSpider) Stop(ctx context.Context) error {
	return a.action(ctx, "stop", nil)
}
