package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// ParseListInput is the input for zap_parse_list.
type ParseListInput struct {
	Value string `json:"value" jsonschema:"Legacy list text such as [a, b, c]"`
}

// ParseListOutput is the output for zap_parse_list.
type ParseListOutput struct {
	Items []string `json:"items,omitzero"`
	Count int      `json:"count"`
}

// ToolParseList decodes the bracketed list format some calls return.
func ToolParseList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ParseListInput) (*sdkmcp.CallToolResult, ParseListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ParseListInput) (*sdkmcp.CallToolResult, ParseListOutput, error) {
		items := zapapi.ParseListString(input.Value)
		return nil, ParseListOutput{Items: items, Count: len(items)}, nil
	}
}
