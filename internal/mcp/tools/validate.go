package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/pkg/calltable"
)

// ValidateTableInput is the input for zap_validate_calltable.
type ValidateTableInput struct {
	Content string `json:"content" jsonschema:"Call table document (see resource zap://calltable/schema)"`
	Format  string `json:"format,omitempty" jsonschema:"Syntax: yaml (default) or json"`
}

// ValidateTableOutput is the output for zap_validate_calltable.
type ValidateTableOutput struct {
	Valid     bool     `json:"valid"`
	Error     string   `json:"error,omitempty"`
	Calls     []string `json:"calls,omitzero"`
	Overrides []string `json:"overrides,omitzero"`
}

// ToolValidateTable checks a call table document without loading it.
// Overrides lists calls that would replace entries of the current table.
func ToolValidateTable(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateTableInput) (*sdkmcp.CallToolResult, ValidateTableOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateTableInput) (*sdkmcp.CallToolResult, ValidateTableOutput, error) {
		if strings.TrimSpace(input.Content) == "" {
			return nil, ValidateTableOutput{}, ErrInvalidInput("content is required")
		}
		format := strings.ToLower(input.Format)
		if format == "" {
			format = "yaml"
		}
		if format != "yaml" && format != "json" {
			return nil, ValidateTableOutput{}, ErrInvalidInput("format must be yaml or json")
		}

		calls, err := calltable.Load(strings.NewReader(input.Content), format)
		if err != nil {
			return nil, ValidateTableOutput{Error: err.Error()}, nil
		}

		output := ValidateTableOutput{Valid: true, Calls: make([]string, 0, len(calls))}
		for _, c := range calls {
			output.Calls = append(output.Calls, c.Name())
			if _, ok := d.Invoker.Table().Lookup(c.Name()); ok {
				output.Overrides = append(output.Overrides, c.Name())
			}
		}
		return nil, output, nil
	}
}
