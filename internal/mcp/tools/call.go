package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/extract"
	"github.com/usestring/zap-mcp/internal/query"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/jsoncompact"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

const defaultMaxResults = 1000

// CallInput is the input for zap_call.
type CallInput struct {
	Name       string         `json:"name" jsonschema:"Call name as component/kind/method, e.g. core/view/hosts (see zap_find_calls)"`
	Args       map[string]any `json:"args,omitempty" jsonschema:"Arguments by parameter name; values must be strings, numbers, booleans or null"`
	Format     string         `json:"format,omitempty" jsonschema:"Rendering to fetch: json (default), xml or html. xpath implies xml and css implies html"`
	JQ         string         `json:"jq,omitempty" jsonschema:"jq expression applied to the JSON result"`
	XPath      string         `json:"xpath,omitempty" jsonschema:"XPath expression applied to the xml (or html) rendering"`
	CSS        string         `json:"css,omitempty" jsonschema:"CSS selector applied to the html rendering"`
	Attr       string         `json:"attr,omitempty" jsonschema:"With css: return this attribute instead of the element text"`
	MaxResults int            `json:"max_results,omitempty" jsonschema:"Max values returned by jq, xpath or css (default: 1000)"`
	Raw        bool           `json:"raw,omitempty" jsonschema:"Skip compaction of long arrays and strings (the byte budget still applies)"`
}

// CallOutput is the output for zap_call.
type CallOutput struct {
	Call      string             `json:"call"`
	Format    string             `json:"format"`
	Result    any                `json:"result"`
	Count     int                `json:"count,omitempty"`
	Errors    []string           `json:"errors,omitzero"`
	Bytes     int                `json:"bytes,omitempty"`
	Compacted *jsoncompact.Stats `json:"compacted,omitempty"`
	Legacy    string             `json:"legacy,omitempty"`
	Hint      string             `json:"hint,omitempty"`
}

// ToolCall invokes any call of the table.
func ToolCall(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CallInput) (*sdkmcp.CallToolResult, CallOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CallInput) (*sdkmcp.CallToolResult, CallOutput, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, CallOutput{}, ErrInvalidInput("name is required")
		}
		call, err := d.Invoker.Resolve(name)
		if err != nil {
			return nil, CallOutput{}, WrapZAPError(err)
		}
		out, err := Invoke(ctx, d, call, input)
		if err != nil {
			return nil, CallOutput{}, err
		}
		return nil, out, nil
	}
}

// Invoke runs a resolved call with the post-processing and compaction
// requested by input. Errors are coded.
func Invoke(ctx context.Context, d *Deps, call calltable.Call, input CallInput) (CallOutput, error) {
	if err := d.ValidateArgs(call, input.Args); err != nil {
		return CallOutput{}, err
	}

	mode, expr, err := extraction(input)
	if err != nil {
		return CallOutput{}, err
	}
	format := zapapi.FormatJSON
	if input.Format != "" {
		f, ok := zapapi.ParseFormat(input.Format)
		if !ok || f == zapapi.FormatOther {
			return CallOutput{}, ErrInvalidInput("format must be json, xml or html")
		}
		format = f
	}
	if mode != "" && format == zapapi.FormatJSON {
		format = extract.FormatFor(mode)
	}
	if format != zapapi.FormatJSON && input.JQ != "" {
		return CallOutput{}, ErrInvalidInput("jq applies to the json rendering only")
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	out := CallOutput{Call: call.Name(), Format: string(format)}
	if call.IsLegacy() {
		out.Legacy = call.Legacy.Note
	}

	var result any
	switch {
	case format != zapapi.FormatJSON:
		if call.Result == calltable.ResultBinary {
			return CallOutput{}, ErrInvalidInput(call.Name() + " returns binary data; xml, html, xpath and css do not apply")
		}
		body, err := d.Invoker.InvokeCallRaw(ctx, format, call, input.Args)
		if err != nil {
			return CallOutput{}, WrapZAPError(err)
		}
		if mode == "" {
			result = body
			break
		}
		res, err := extract.Extract(body, format, mode, expr, extract.Options{MaxResults: maxResults, Attr: input.Attr})
		if err != nil {
			return CallOutput{}, ErrInvalidInput(err.Error())
		}
		result, out.Count = res.Values, res.Count

	default:
		value, err := d.Invoker.InvokeCall(ctx, call, input.Args)
		if err != nil {
			return CallOutput{}, WrapZAPError(err)
		}
		if data, ok := value.([]byte); ok {
			return binaryOutput(d, out, data), nil
		}
		result = value
		if input.JQ != "" {
			res, err := d.Query.Run(ctx, input.JQ, value, query.Options{MaxResults: maxResults})
			if err != nil {
				if ctx.Err() != nil {
					return CallOutput{}, WrapZAPError(err)
				}
				return CallOutput{}, ErrInvalidInput(err.Error())
			}
			result, out.Count, out.Errors = res.Values, len(res.Values), res.Errors
			if res.Truncated {
				out.Hint = fmt.Sprintf("jq output truncated to %d values; raise max_results for more", maxResults)
			}
		}
	}

	opts := d.Config.Compaction()
	if input.Raw {
		opts = jsoncompact.Options{}
	}
	data, stats, err := jsoncompact.Fit(result, opts, d.Config.ResultMaxBytes)
	if err != nil {
		if errors.Is(err, jsoncompact.ErrTooLarge) {
			return CallOutput{}, ErrInvalidInput(fmt.Sprintf("%v; narrow the result with jq, xpath or css", err))
		}
		return CallOutput{}, err
	}
	if err := json.Unmarshal(data, &out.Result); err != nil {
		return CallOutput{}, fmt.Errorf("decoding compacted result: %w", err)
	}
	if stats.Changed() {
		out.Compacted = &stats
		if out.Hint == "" {
			out.Hint = "Result was compacted; use jq to select the part you need, or raw=true."
		}
	}
	return out, nil
}

func extraction(input CallInput) (extract.Mode, string, error) {
	var mode extract.Mode
	var expr string
	set := 0
	if input.JQ != "" {
		set++
	}
	if input.XPath != "" {
		set++
		mode, expr = extract.ModeXPath, input.XPath
	}
	if input.CSS != "" {
		set++
		mode, expr = extract.ModeCSS, input.CSS
	}
	if set > 1 {
		return "", "", ErrInvalidInput("use only one of jq, xpath and css")
	}
	if input.Attr != "" && mode != extract.ModeCSS {
		return "", "", ErrInvalidInput("attr requires css")
	}
	return mode, expr, nil
}

// binaryOutput inlines small payloads as base64 and reports the size of
// larger ones.
func binaryOutput(d *Deps, out CallOutput, data []byte) CallOutput {
	out.Format = "base64"
	out.Bytes = len(data)
	if base64.StdEncoding.EncodedLen(len(data)) > d.Config.ResultMaxBytes {
		out.Hint = fmt.Sprintf("%d bytes of binary data exceed the result budget; fetch it with zapctl call --out", len(data))
		return out
	}
	out.Result = base64.StdEncoding.EncodeToString(data)
	return out
}
