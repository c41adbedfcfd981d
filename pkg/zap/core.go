package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Core wraps the core component.
type Core struct{ base }

// Message is an HTTP message from the history.
type Message struct {
	ID             int
	Type           int
	Timestamp      int64
	RTT            int
	Note           string
	RequestHeader  string
	RequestBody    string
	ResponseHeader string
	ResponseBody   string
}

// Version returns the proxy version, e.g. "2.14.0" or "D-2024-01-15".
func (c *Core) Version(ctx context.Context) (string, error) {
	return view[string](ctx, c.base, "version", nil)
}

// Hosts returns the hosts accessed through or by the proxy.
func (c *Core) Hosts(ctx context.Context) ([]string, error) {
	return view[[]string](ctx, c.base, "hosts", nil)
}

// Sites returns the sites (scheme, host and port) accessed so far.
func (c *Core) Sites(ctx context.Context) ([]string, error) {
	return view[[]string](ctx, c.base, "sites", nil)
}

// URLs returns the URLs accessed so far, optionally under baseURL.
func (c *Core) URLs(ctx context.Context, baseURL string) ([]string, error) {
	return view[[]string](ctx, c.base, "urls", zapapi.NewParams().SetIf("baseurl", baseURL))
}

// NumberOfMessages counts history messages, optionally under baseURL.
func (c *Core) NumberOfMessages(ctx context.Context, baseURL string) (int, error) {
	return view[int](ctx, c.base, "numberOfMessages", zapapi.NewParams().SetIf("baseurl", baseURL))
}

// Message returns the history message with the given ID.
func (c *Core) Message(ctx context.Context, id int) (Message, error) {
	return view[Message](ctx, c.base, "message", zapapi.NewParams().SetInt("id", id))
}

// Messages returns a window of history messages.
func (c *Core) Messages(ctx context.Context, page Page) ([]Message, error) {
	return view[[]Message](ctx, c.base, "messages", page.params())
}

// Mode returns the current mode: safe, protect, standard or attack.
func (c *Core) Mode(ctx context.Context) (string, error) {
	return view[string](ctx, c.base, "mode", nil)
}

// SetMode changes the mode.
func (c *Core) SetMode(ctx context.Context, mode string) error {
	return c.action(ctx, "setMode", zapapi.NewParams().Set("mode", mode))
}

// AccessURL requests url through the proxy so it appears in the site tree.
func (c *Core) AccessURL(ctx context.Context, url string, followRedirects bool) error {
	params := zapapi.NewParams().Set("url", url).SetBool("followRedirects", followRedirects)
	_, err := actionResult[any](ctx, c.base, "accessUrl", params)
	return err
}

// NewSession starts a new session. An empty name lets the proxy pick one.
func (c *Core) NewSession(ctx context.Context, name string, overwrite bool) error {
	return c.action(ctx, "newSession", zapapi.NewParams().SetIf("name", name).SetBool("overwrite", overwrite))
}

// SaveSession saves the session under name.
func (c *Core) SaveSession(ctx context.Context, name string, overwrite bool) error {
	return c.action(ctx, "saveSession", zapapi.NewParams().Set("name", name).SetBool("overwrite", overwrite))
}

// ExcludeFromProxy stops proxying URLs that match regex.
func (c *Core) ExcludeFromProxy(ctx context.Context, regex string) error {
	return c.action(ctx, "excludeFromProxy", zapapi.NewParams().Set("regex", regex))
}

// DeleteAllAlerts removes every alert.
func (c *Core) DeleteAllAlerts(ctx context.Context) error {
	return c.action(ctx, "deleteAllAlerts", nil)
}

// Shutdown stops the proxy.
func (c *Core) Shutdown(ctx context.Context) error {
	return c.action(ctx, "shutdown", nil)
}

// RootCert returns the root CA certificate in PEM form, unparsed.
func (c *Core) RootCert(ctx context.Context) ([]byte, error) {
	return c.otherData(ctx, "rootcert", nil)
}

// ProxyPAC returns the proxy auto-configuration script.
func (c *Core) ProxyPAC(ctx context.Context) (string, error) {
	return c.other(ctx, "proxy.pac", nil)
}
