package calltable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

var (
	// ErrUnknownCall is returned for a name that is not in the table.
	ErrUnknownCall = errors.New("unknown call")
	// ErrInvalidArgument is returned for unknown, missing or non-scalar
	// arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned when the configured proxy version does not
	// satisfy the call's Since constraint.
	ErrUnsupported = errors.New("call not supported by proxy version")
	// ErrLegacy is returned by a strict invoker for legacy calls.
	ErrLegacy = errors.New("legacy call refused")
)

// Invoker dispatches table calls through a zapapi.Client.
type Invoker struct {
	client  *zapapi.Client
	table   *Table
	version string
	strict  bool
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithProxyVersion enables Since gating against the given proxy version.
func WithProxyVersion(version string) InvokerOption {
	return func(inv *Invoker) {
		inv.version = version
	}
}

// WithStrictLegacy makes legacy calls fail with ErrLegacy instead of
// logging a warning.
func WithStrictLegacy(strict bool) InvokerOption {
	return func(inv *Invoker) {
		inv.strict = strict
	}
}

// NewInvoker creates an invoker. A nil table means Builtin().
func NewInvoker(c *zapapi.Client, t *Table, opts ...InvokerOption) *Invoker {
	if t == nil {
		t = Builtin()
	}
	inv := &Invoker{client: c, table: t}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Table returns the invoker's call table.
func (inv *Invoker) Table() *Table { return inv.table }

// Client returns the underlying client.
func (inv *Invoker) Client() *zapapi.Client { return inv.client }

// ProxyVersion returns the version used for gating, or "".
func (inv *Invoker) ProxyVersion() string { return inv.version }

// Resolve looks up a call and applies version gating and the legacy policy.
func (inv *Invoker) Resolve(name string) (Call, error) {
	call, ok := inv.table.Lookup(name)
	if !ok {
		return Call{}, fmt.Errorf("%w: %s", ErrUnknownCall, name)
	}
	if !call.SupportedBy(inv.version) {
		return Call{}, fmt.Errorf("%w: %s requires %s, proxy is %s", ErrUnsupported, name, call.Since, inv.version)
	}
	if call.IsLegacy() {
		if inv.strict {
			return Call{}, fmt.Errorf("%w: %s: %s", ErrLegacy, name, legacyHint(call))
		}
		slog.Warn("invoking legacy ZAP call", "call", name, "note", call.Legacy.Note, "replacement", call.Legacy.Replacement)
	}
	return call, nil
}

func legacyHint(c Call) string {
	if c.Legacy.Replacement == "" {
		return c.Legacy.Note
	}
	return c.Legacy.Note + " (use " + c.Legacy.Replacement + ")"
}

// Params builds the wire parameters for call from args. Parameters are
// emitted in the order the call declares them. Absent optional arguments are
// omitted and nil arguments are sent as null. Unknown arguments, missing
// required arguments and non-scalar values fail with ErrInvalidArgument.
func Params(call Call, args map[string]any) (*zapapi.Params, error) {
	var unknown []string
	for name := range args {
		if _, ok := call.Param(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s does not accept %s", ErrInvalidArgument, call.Name(), strings.Join(unknown, ", "))
	}

	params := zapapi.NewParams()
	for _, p := range call.Params {
		v, ok := args[p.Name]
		if !ok {
			if p.Required {
				return nil, fmt.Errorf("%w: %s requires %q", ErrInvalidArgument, call.Name(), p.Name)
			}
			continue
		}
		switch v.(type) {
		case nil:
			params.SetNull(p.Name)
		case map[string]any, []any:
			return nil, fmt.Errorf("%w: %q must be a scalar", ErrInvalidArgument, p.Name)
		default:
			params.SetValue(p.Name, v)
		}
	}
	return params, nil
}

// Invoke resolves name and invokes it with args. The result type follows the
// call's shape: any for value, []string for legacy_list, string for status
// ("OK") and text, []byte for binary.
func (inv *Invoker) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	call, err := inv.Resolve(name)
	if err != nil {
		return nil, err
	}
	return inv.InvokeCall(ctx, call, args)
}

// InvokeCall invokes an already resolved call.
func (inv *Invoker) InvokeCall(ctx context.Context, call Call, args map[string]any) (any, error) {
	params, err := Params(call, args)
	if err != nil {
		return nil, err
	}
	comp := inv.client.Component(call.Component)

	switch call.Result {
	case ResultStatus:
		if err := inv.client.CallAction(ctx, comp, call.Method, params); err != nil {
			return nil, err
		}
		return "OK", nil
	case ResultLegacyList:
		var s string
		if call.Kind == zapapi.Action {
			s, err = zapapi.CallActionResult[string](ctx, inv.client, comp, call.Method, call.ResultKey, params)
		} else {
			s, err = zapapi.CallView[string](ctx, inv.client, comp, call.Method, call.ResultKey, params)
		}
		if err != nil {
			return nil, err
		}
		return zapapi.ParseListString(s), nil
	case ResultText:
		return inv.client.CallOther(ctx, comp, call.Method, inv.keyed(call, comp, params))
	case ResultBinary:
		return inv.client.CallOtherData(ctx, comp, call.Method, inv.keyed(call, comp, params))
	default:
		if call.Kind == zapapi.Action {
			return zapapi.CallActionResult[any](ctx, inv.client, comp, call.Method, call.ResultKey, params)
		}
		return zapapi.CallView[any](ctx, inv.client, comp, call.Method, call.ResultKey, params)
	}
}

// keyed adds the API key to other calls that need it. Views never carry it
// and actions get it from the client.
func (inv *Invoker) keyed(call Call, comp zapapi.Component, params *zapapi.Params) *zapapi.Params {
	if call.Kind == zapapi.Other && call.RequiresKey {
		return zapapi.InjectAPIKey(params, comp.APIKey)
	}
	return params
}

// InvokeRaw fetches the call in format without decoding, for xml and html
// renderings of views and actions. Other calls are fetched as text.
func (inv *Invoker) InvokeRaw(ctx context.Context, format zapapi.Format, name string, args map[string]any) (string, error) {
	call, err := inv.Resolve(name)
	if err != nil {
		return "", err
	}
	return inv.InvokeCallRaw(ctx, format, call, args)
}

// InvokeCallRaw is InvokeRaw for an already resolved call.
func (inv *Invoker) InvokeCallRaw(ctx context.Context, format zapapi.Format, call Call, args map[string]any) (string, error) {
	params, err := Params(call, args)
	if err != nil {
		return "", err
	}
	comp := inv.client.Component(call.Component)
	if call.Kind == zapapi.Other {
		return inv.client.CallOther(ctx, comp, call.Method, inv.keyed(call, comp, params))
	}
	return inv.client.CallRaw(ctx, format, comp, call.Kind, call.Method, params)
}

// DecodeArgs parses a JSON object of arguments, keeping numbers exact.
func DecodeArgs(data []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON object: %v", ErrInvalidArgument, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
