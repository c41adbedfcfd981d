// Package zapapitest provides an in-memory zapapi.Transport for tests.
package zapapitest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Transport answers locators from canned responses keyed by route, the
// locator path without the "http://zap/" prefix and trailing slash, e.g.
// "json/core/view/version". It is safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	responses map[string]response
	requests  []string
}

type response struct {
	body string
	err  error
}

// NewTransport returns an empty transport. Unknown routes fail with an
// error.
func NewTransport() *Transport {
	return &Transport{responses: make(map[string]response)}
}

// Handle sets the body returned for route.
func (t *Transport) Handle(route, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[route] = response{body: body}
	return t
}

// Fail makes route return err.
func (t *Transport) Fail(route string, err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[route] = response{err: err}
	return t
}

// DownloadString implements zapapi.Transport.
func (t *Transport) DownloadString(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, locator)
	r, ok := t.responses[Route(locator)]
	if !ok {
		return "", fmt.Errorf("zapapitest: no response for %s", Route(locator))
	}
	return r.body, r.err
}

// DownloadData implements zapapi.Transport.
func (t *Transport) DownloadData(ctx context.Context, locator string) ([]byte, error) {
	s, err := t.DownloadString(ctx, locator)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Requests returns every locator requested so far.
func (t *Transport) Requests() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.requests...)
}

// Last returns the most recent locator, or "".
func (t *Transport) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return ""
	}
	return t.requests[len(t.requests)-1]
}

// Query returns the decoded query of the most recent request to route.
func (t *Transport) Query(route string) url.Values {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.requests) - 1; i >= 0; i-- {
		if Route(t.requests[i]) == route {
			u, err := url.Parse(t.requests[i])
			if err != nil {
				return nil
			}
			return u.Query()
		}
	}
	return nil
}

// Route strips the base locator, the trailing slash and the query.
func Route(locator string) string {
	s := strings.TrimPrefix(locator, zapapi.BaseLocator)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "/")
}

// NewClient returns a client backed by t with the given API key.
func NewClient(t *Transport, apiKey string) *zapapi.Client {
	return zapapi.New(zapapi.WithTransport(t), zapapi.WithAPIKey(apiKey))
}
