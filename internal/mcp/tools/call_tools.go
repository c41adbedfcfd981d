package tools

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/pkg/calltable"
)

// RegisterCallTools adds one tool per non-legacy call the proxy version
// supports. Their input schema is the call's argument schema, so arguments
// are passed directly rather than under "args".
func RegisterCallTools(srv *sdkmcp.Server, d *Deps) int {
	n := 0
	for _, call := range d.Invoker.Table().All() {
		if call.IsLegacy() || !call.SupportedBy(d.Invoker.ProxyVersion()) {
			continue
		}
		srv.AddTool(&sdkmcp.Tool{
			Name:        ToolName(call),
			Description: callToolDescription(call),
			InputSchema: call.ArgumentSchema(),
		}, callToolHandler(d, call))
		n++
	}
	slog.Debug("registered per-call tools", "count", n)
	return n
}

func callToolDescription(c calltable.Call) string {
	desc := c.Description
	if desc == "" {
		desc = c.Name()
	}
	return desc + " (ZAP " + c.Name() + ")"
}

func callToolHandler(d *Deps, call calltable.Call) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args, err := calltable.DecodeArgs(req.Params.Arguments)
		if err != nil {
			return MakeErrorToolResult(ErrInvalidInput(err.Error())), nil
		}
		out, err := Invoke(ctx, d, call, CallInput{Name: call.Name(), Args: args})
		if err != nil {
			return MakeErrorToolResult(err), nil
		}
		return MakeJSONToolResult(out)
	}
}
