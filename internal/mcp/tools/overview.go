package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/overview"
)

// OverviewInput is the input for zap_overview.
type OverviewInput struct {
	Concurrency int `json:"concurrency,omitempty" jsonschema:"Calls in flight at once (default: 4)"`
}

// ToolOverview snapshots the proxy state.
func ToolOverview(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input OverviewInput) (*sdkmcp.CallToolResult, *overview.Snapshot, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input OverviewInput) (*sdkmcp.CallToolResult, *overview.Snapshot, error) {
		snap, err := overview.Collect(ctx, d.ZAP, overview.WithConcurrency(input.Concurrency))
		if err != nil {
			return nil, nil, WrapZAPError(err)
		}
		return nil, snap, nil
	}
}
