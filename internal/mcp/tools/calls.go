package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/catalog"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

const (
	defaultFindLimit = 20
	maxFindLimit     = 200
)

// FindCallsInput is the input for zap_find_calls.
type FindCallsInput struct {
	Query         string `json:"query,omitempty" jsonschema:"Keywords matched against call names, parameters and descriptions (all must match, prefixes allowed)"`
	Component     string `json:"component,omitempty" jsonschema:"Restrict to one component, e.g. ascan, spider, core"`
	Kind          string `json:"kind,omitempty" jsonschema:"Restrict to view, action or other"`
	IncludeLegacy bool   `json:"include_legacy,omitempty" jsonschema:"Include calls flagged as legacy (default: false)"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Max calls to return (default: 20, max: 200)"`
}

// CallSummary is one call in a listing.
type CallSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitzero"`
	Optional    []string `json:"optional,omitzero"`
	Since       string   `json:"since,omitempty"`
	Legacy      bool     `json:"legacy,omitempty"`
}

// FindCallsOutput is the output for zap_find_calls.
type FindCallsOutput struct {
	Calls []CallSummary `json:"calls,omitzero"`
	Total int           `json:"total"`
	Hint  string        `json:"hint,omitempty"`
}

// ToolFindCalls searches the call table.
func ToolFindCalls(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindCallsInput) (*sdkmcp.CallToolResult, FindCallsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindCallsInput) (*sdkmcp.CallToolResult, FindCallsOutput, error) {
		q := catalog.Query{
			Text:          input.Query,
			Component:     input.Component,
			IncludeLegacy: input.IncludeLegacy,
			Limit:         input.Limit,
		}
		if input.Kind != "" {
			kind, ok := zapapi.ParseCallKind(input.Kind)
			if !ok {
				return nil, FindCallsOutput{}, ErrInvalidInput("kind must be view, action or other")
			}
			q.Kind = kind
		}
		if q.Limit <= 0 {
			q.Limit = defaultFindLimit
		}
		if q.Limit > maxFindLimit {
			q.Limit = maxFindLimit
		}

		res := d.Catalog.Search(q)
		output := FindCallsOutput{
			Calls: make([]CallSummary, 0, len(res.Hits)),
			Total: res.Total,
		}
		for _, hit := range res.Hits {
			output.Calls = append(output.Calls, summarize(hit.Call))
		}

		switch {
		case res.Total == 0:
			output.Hint = "No calls matched. Try fewer keywords or drop the component/kind filter."
		case res.Total > len(res.Hits):
			output.Hint = fmt.Sprintf("Showing %d of %d calls. Add keywords or raise limit.", len(res.Hits), res.Total)
		}
		return nil, output, nil
	}
}

func summarize(c calltable.Call) CallSummary {
	required, optional := paramNames(c)
	return CallSummary{
		Name:        c.Name(),
		Description: c.Description,
		Required:    required,
		Optional:    optional,
		Since:       c.Since,
		Legacy:      c.IsLegacy(),
	}
}

// DescribeCallInput is the input for zap_describe_call.
type DescribeCallInput struct {
	Name string `json:"name" jsonschema:"Call name as component/kind/method, e.g. ascan/action/scan"`
}

// ParamInfo describes one parameter.
type ParamInfo struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// DescribeCallOutput is the output for zap_describe_call.
type DescribeCallOutput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Result         string         `json:"result"`
	ResultKey      string         `json:"result_key,omitempty"`
	Params         []ParamInfo    `json:"params,omitzero"`
	RequiresKey    bool           `json:"requires_key,omitempty"`
	Since          string         `json:"since,omitempty"`
	Supported      bool           `json:"supported"`
	Legacy         string         `json:"legacy,omitempty"`
	Replacement    string         `json:"replacement,omitempty"`
	Locator        string         `json:"locator"`
	ArgumentSchema map[string]any `json:"argument_schema,omitempty"`
	ToolName       string         `json:"tool_name,omitempty"`
}

// ToolDescribeCall returns the full table entry for one call.
func ToolDescribeCall(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeCallInput) (*sdkmcp.CallToolResult, DescribeCallOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeCallInput) (*sdkmcp.CallToolResult, DescribeCallOutput, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, DescribeCallOutput{}, ErrInvalidInput("name is required")
		}
		call, ok := d.Invoker.Table().Lookup(name)
		if !ok {
			return nil, DescribeCallOutput{}, ErrNotFound("call", name)
		}
		output := Describe(call, d.Invoker.ProxyVersion())
		if d.Config.ExposeCallTools {
			output.ToolName = ToolName(call)
		}
		return nil, output, nil
	}
}

// Describe renders a call for assistants. version gates Supported.
func Describe(call calltable.Call, version string) DescribeCallOutput {
	out := DescribeCallOutput{
		Name:           call.Name(),
		Description:    call.Description,
		Result:         string(call.Result),
		ResultKey:      call.ResultKey,
		Params:         make([]ParamInfo, 0, len(call.Params)),
		RequiresKey:    call.RequiresKey,
		Since:          call.Since,
		Supported:      call.SupportedBy(version),
		ArgumentSchema: call.ArgumentSchema(),
	}
	for _, p := range call.Params {
		out.Params = append(out.Params, ParamInfo{Name: p.Name, Required: p.Required, Description: p.Description})
	}
	if call.IsLegacy() {
		out.Legacy = call.Legacy.Note
		out.Replacement = call.Legacy.Replacement
	}

	format := zapapi.FormatJSON
	if call.Kind == zapapi.Other {
		format = zapapi.FormatOther
	}
	out.Locator = zapapi.Build(format, call.Component, call.Kind, call.Method, nil)
	return out
}
