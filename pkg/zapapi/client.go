package zapapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// Connection defaults for a locally running proxy.
const (
	DefaultHost    = "localhost"
	DefaultPort    = 8080
	DefaultTimeout = 30 * time.Second
)

// APIKeyParam is the query parameter carrying the API key.
const APIKeyParam = "apikey"

// ConnectionInfo identifies the proxy and the key used for mutating calls.
type ConnectionInfo struct {
	Host   string
	Port   int
	APIKey string
}

// Component is a logical group of remote methods, addressed by its URL
// segment. It is a value and never changes after construction.
type Component struct {
	Name   string
	APIKey string
}

// NewComponent returns a component identity.
func NewComponent(name, apiKey string) Component {
	return Component{Name: name, APIKey: apiKey}
}

// Client dispatches calls to the ZAP API. It holds no mutable state and is
// safe for concurrent use when its Transport is.
type Client struct {
	conn       ConnectionInfo
	timeout    time.Duration
	httpClient *http.Client
	transport  Transport
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithProxy sets the proxy address requests are routed through.
func WithProxy(host string, port int) Option {
	return func(c *Client) {
		c.conn.Host = host
		c.conn.Port = port
	}
}

// WithAPIKey sets the key injected into action calls.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.conn.APIKey = key
	}
}

// WithConnection sets host, port and key at once.
func WithConnection(info ConnectionInfo) Option {
	return func(c *Client) {
		c.conn = info
	}
}

// WithTimeout sets the HTTP client timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient uses httpClient for the default transport instead of one
// routed through WithProxy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTransport replaces the transport entirely.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// New creates a new ZAP API client.
func New(opts ...Option) *Client {
	c := &Client{
		conn:    ConnectionInfo{Host: DefaultHost, Port: DefaultPort},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		if c.httpClient != nil {
			c.transport = NewHTTPTransportWithClient(c.httpClient)
		} else {
			c.transport = NewHTTPTransport(c.conn.Host, c.conn.Port, c.timeout)
		}
	}
	return c
}

// Connection returns the connection the client was built with.
func (c *Client) Connection() ConnectionInfo {
	return c.conn
}

// Component returns the identity for a component using the client's key.
func (c *Client) Component(name string) Component {
	return Component{Name: name, APIKey: c.conn.APIKey}
}

// CallAPI performs a JSON call and returns the parsed envelope.
//
// For action calls the component's API key is added as "apikey". Any body
// carrying both "code" and "message" is returned as a RemoteAPI error,
// whatever the call kind.
func (c *Client) CallAPI(ctx context.Context, comp Component, kind CallKind, method string, params *Params) (Envelope, error) {
	call := callName(comp.Name, kind, method)
	if kind == Action {
		params = InjectAPIKey(params, comp.APIKey)
	}

	start := time.Now()
	body, err := c.transport.DownloadString(ctx, Build(FormatJSON, comp.Name, kind, method, params))
	if err != nil {
		return Envelope{}, failed(ctx, call, start, err)
	}

	env, err := parseEnvelope(call, []byte(body))
	logCall(ctx, call, start, err)
	return env, err
}

// CallView performs a view call and converts the result to T. With a
// non-empty resultKey the envelope is indexed by that property first; a
// missing or null property is an UnknownResult error.
func CallView[T any](ctx context.Context, c *Client, comp Component, method, resultKey string, params *Params) (T, error) {
	env, err := c.CallAPI(ctx, comp, View, method, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](env, callName(comp.Name, View, method), resultKey)
}

// CallActionResult performs an action call and unwraps its result like
// CallView.
func CallActionResult[T any](ctx context.Context, c *Client, comp Component, method, resultKey string, params *Params) (T, error) {
	env, err := c.CallAPI(ctx, comp, Action, method, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](env, callName(comp.Name, Action, method), resultKey)
}

// CallAction performs an action call whose envelope is {"Result": "OK"}.
// "FAIL" is an ActionFailed error; any other or missing value is an
// UnknownResult error.
func (c *Client) CallAction(ctx context.Context, comp Component, method string, params *Params) error {
	env, err := c.CallAPI(ctx, comp, Action, method, params)
	if err != nil {
		return err
	}

	call := callName(comp.Name, Action, method)
	result, ok := env.Lookup("Result")
	if !ok {
		return newError(KindUnknownResult, call, `missing "Result" property`)
	}
	switch s, _ := result.(string); s {
	case "OK":
		return nil
	case "FAIL":
		return newError(KindActionFailed, call, `remote reported "FAIL"`)
	default:
		return newError(KindUnknownResult, call, fmt.Sprintf("unrecognized Result %v", result))
	}
}

// CallOther performs an other call and returns the raw payload as text.
// An empty payload is an EmptyResult error.
func (c *Client) CallOther(ctx context.Context, comp Component, method string, params *Params) (string, error) {
	call := callName(comp.Name, Other, method)
	start := time.Now()
	body, err := c.transport.DownloadString(ctx, Build(FormatOther, comp.Name, Other, method, params))
	if err != nil {
		return "", failed(ctx, call, start, err)
	}
	if err := checkPayload(call, []byte(body)); err != nil {
		logCall(ctx, call, start, err)
		return "", err
	}
	logCall(ctx, call, start, nil)
	return body, nil
}

// CallOtherData performs an other call and returns the raw payload. An
// empty payload is an EmptyResult error.
func (c *Client) CallOtherData(ctx context.Context, comp Component, method string, params *Params) ([]byte, error) {
	call := callName(comp.Name, Other, method)
	start := time.Now()
	data, err := c.transport.DownloadData(ctx, Build(FormatOther, comp.Name, Other, method, params))
	if err != nil {
		return nil, failed(ctx, call, start, err)
	}
	if err := checkPayload(call, data); err != nil {
		logCall(ctx, call, start, err)
		return nil, err
	}
	logCall(ctx, call, start, nil)
	return data, nil
}

// CallRaw fetches a call in the given format without decoding it, e.g. the
// xml or html rendering of a view. Action calls carry the API key. A json
// rendering that is an error envelope is still a RemoteAPI error.
func (c *Client) CallRaw(ctx context.Context, format Format, comp Component, kind CallKind, method string, params *Params) (string, error) {
	call := callName(comp.Name, kind, method)
	if kind == Action {
		params = InjectAPIKey(params, comp.APIKey)
	}

	start := time.Now()
	body, err := c.transport.DownloadString(ctx, Build(format, comp.Name, kind, method, params))
	if err != nil {
		return "", failed(ctx, call, start, err)
	}
	if strings.TrimSpace(body) == "" {
		err := newError(KindEmptyResult, call, "response body is empty")
		logCall(ctx, call, start, err)
		return "", err
	}
	if format == FormatJSON {
		if _, err := parseEnvelope(call, []byte(body)); KindOf(err) == KindRemoteAPI {
			logCall(ctx, call, start, err)
			return "", err
		}
	}
	logCall(ctx, call, start, nil)
	return body, nil
}

// InjectAPIKey returns a copy of params with "apikey" set when key is
// non-empty. params itself is never modified.
func InjectAPIKey(params *Params, key string) *Params {
	if key == "" {
		return params
	}
	return params.Clone().Set(APIKeyParam, key)
}

func unwrap[T any](env Envelope, call, resultKey string) (T, error) {
	var zero T
	v := env.Value()
	if resultKey != "" {
		val, ok := env.Lookup(resultKey)
		if !ok {
			return zero, newError(KindUnknownResult, call, fmt.Sprintf("missing result property %q", resultKey))
		}
		v = val
	}

	out, err := Convert[T](v)
	if err != nil {
		return zero, &APIError{
			Kind:   KindUnknownResult,
			Call:   call,
			Detail: fmt.Sprintf("cannot convert result to %s", reflect.TypeFor[T]()),
			Err:    err,
		}
	}
	return out, nil
}

// failed classifies a transport error and logs it. An HTTP error status
// carrying the API's error envelope is a RemoteAPI error; anything else is
// a Transport error.
func failed(ctx context.Context, call string, start time.Time, err error) *APIError {
	apiErr := &APIError{Kind: KindTransport, Call: call, Err: err}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.IsEnvelope() {
		apiErr.Kind = KindRemoteAPI
		apiErr.Code = statusErr.Code
		apiErr.Detail = statusErr.Message
	}
	logCall(ctx, call, start, apiErr)
	return apiErr
}

// checkPayload applies the checks every other payload gets: it must not be
// empty, and the API's error envelope is an error whatever the call kind.
func checkPayload(call string, body []byte) error {
	if len(body) == 0 {
		return newError(KindEmptyResult, call, "response body is empty")
	}
	if env, ok := errorEnvelope(body); ok {
		return &APIError{Kind: KindRemoteAPI, Call: call, Code: env.code, Detail: env.message}
	}
	return nil
}

func callName(component string, kind CallKind, method string) string {
	return component + "/" + strings.ToLower(string(kind)) + "/" + method
}

func logCall(ctx context.Context, call string, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("call", call),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		slog.LogAttrs(ctx, slog.LevelDebug, "ZAP call failed", attrs...)
		return
	}
	slog.LogAttrs(ctx, slog.LevelDebug, "ZAP call completed", attrs...)
}
