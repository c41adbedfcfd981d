package zapapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Transport performs the single blocking exchange behind every call.
// Implementations must not retry or cache.
type Transport interface {
	DownloadString(ctx context.Context, locator string) (string, error)
	DownloadData(ctx context.Context, locator string) ([]byte, error)
}

// StatusError is returned by HTTPTransport for every HTTP error status.
// When the body is an API error envelope, Code and Message hold its
// fields and the dispatcher reports the failure as RemoteAPI.
type StatusError struct {
	StatusCode int
	Body       string
	Code       string
	Message    string
}

// IsEnvelope reports whether the body carried the API's {code, message}
// error shape.
func (e *StatusError) IsEnvelope() bool { return e.Code != "" || e.Message != "" }

func (e *StatusError) Error() string {
	if e.IsEnvelope() {
		return fmt.Sprintf("HTTP status %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	if e.Body == "" {
		return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// HTTPTransport sends locators through the ZAP proxy listener over HTTP.
type HTTPTransport struct {
	httpClient *http.Client
}

// NewHTTPTransport returns a transport that routes requests through the
// proxy at host:port. A zero timeout means no client-side timeout.
func NewHTTPTransport(host string, port int, timeout time.Duration) *HTTPTransport {
	proxyURL := &url.URL{Scheme: "http", Host: net.JoinHostPort(host, strconv.Itoa(port))}
	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			},
		},
	}
}

// NewHTTPTransportWithClient wraps an existing client. The caller is
// responsible for routing the zap host to the proxy.
func NewHTTPTransportWithClient(httpClient *http.Client) *HTTPTransport {
	return &HTTPTransport{httpClient: httpClient}
}

// DownloadString implements Transport.
func (t *HTTPTransport) DownloadString(ctx context.Context, locator string) (string, error) {
	body, err := t.get(ctx, locator)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadData implements Transport.
func (t *HTTPTransport) DownloadData(ctx context.Context, locator string) ([]byte, error) {
	return t.get(ctx, locator)
}

func (t *HTTPTransport) get(ctx context.Context, locator string) ([]byte, error) {
	start := time.Now()
	path := redactLocator(locator)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		slog.Debug("ZAP request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Debug("ZAP request returned error status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if env, ok := errorEnvelope(body); ok {
			statusErr.Code, statusErr.Message = env.code, env.message
		}
		return nil, statusErr
	}

	slog.Debug("ZAP request completed",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return body, nil
}

// redactLocator drops the query so API keys never reach the logs.
func redactLocator(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return "<invalid locator>"
	}
	return u.Path
}
