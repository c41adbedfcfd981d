package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Context wraps the context component. Several of its views return legacy
// "[a, b]" strings, which are decoded into slices.
type Context struct{ base }

// ContextInfo describes a context.
type ContextInfo struct {
	ID          int
	Name        string
	Description string
	InScope     bool
}

// List returns the context names.
func (c *Context) List(ctx context.Context) ([]string, error) {
	return c.list(ctx, "contextList", nil)
}

// IncludeRegexs returns the include regexes of a context.
func (c *Context) IncludeRegexs(ctx context.Context, name string) ([]string, error) {
	return c.list(ctx, "includeRegexs", contextName(name))
}

// ExcludeRegexs returns the exclude regexes of a context.
func (c *Context) ExcludeRegexs(ctx context.Context, name string) ([]string, error) {
	return c.list(ctx, "excludeRegexs", contextName(name))
}

// Technologies returns the technologies known to the proxy.
func (c *Context) Technologies(ctx context.Context) ([]string, error) {
	return c.list(ctx, "technologyList", nil)
}

// Get returns the details of a context.
func (c *Context) Get(ctx context.Context, name string) (ContextInfo, error) {
	return view[ContextInfo](ctx, c.base, "context", contextName(name))
}

// New creates a context and returns its ID.
func (c *Context) New(ctx context.Context, name string) (int, error) {
	return actionResult[int](ctx, c.base, "newContext", contextName(name))
}

// Remove deletes a context.
func (c *Context) Remove(ctx context.Context, name string) error {
	return c.action(ctx, "removeContext", contextName(name))
}

// Include adds an include regex to a context.
func (c *Context) Include(ctx context.Context, name, regex string) error {
	return c.action(ctx, "includeInContext", contextName(name).Set("regex", regex))
}

// Exclude adds an exclude regex to a context.
func (c *Context) Exclude(ctx context.Context, name, regex string) error {
	return c.action(ctx, "excludeFromContext", contextName(name).Set("regex", regex))
}

// SetInScope marks a context in or out of scope.
func (c *Context) SetInScope(ctx context.Context, name string, inScope bool) error {
	return c.action(ctx, "setContextInScope", contextName(name).SetBool("booleanInScope", inScope))
}

func contextName(name string) *zapapi.Params {
	return zapapi.NewParams().Set("contextName", name)
}
