// Package tools contains the MCP tools exposing the ZAP API.
package tools

import (
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/pkg/calltable"
)

// MIME type constant.
const MimeJSON = "application/json"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// MakeErrorToolResult reports err inside the result, as the typed handlers
// of the SDK do.
func MakeErrorToolResult(err error) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: err.Error()},
		},
	}
}

// ToolName returns the per-call tool name, e.g. zap_ascan_action_scan.
func ToolName(c calltable.Call) string {
	name := "zap_" + c.Component + "_" + string(c.Kind) + "_" + c.Method
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}

// paramNames splits a call's parameters into required and optional names.
func paramNames(c calltable.Call) (required, optional []string) {
	for _, p := range c.Params {
		if p.Required {
			required = append(required, p.Name)
		} else {
			optional = append(optional, p.Name)
		}
	}
	return required, optional
}
