package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_find_calls",
		Description: "Search the ZAP API call table by keywords, component and kind. Returns {calls: [{name, description, required, optional, since, legacy}], total, hint}. Start here to find the call name to pass to zap_call. Legacy calls are hidden unless include_legacy is set.",
	}, ToolFindCalls(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_describe_call",
		Description: "Describe one ZAP API call: parameters in wire order, result shape, legacy note and replacement, minimum proxy version, argument JSON schema and locator. Requires a name from zap_find_calls.",
	}, ToolDescribeCall(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_call",
		Description: "Invoke a ZAP API call by name with scalar arguments. Actions are authorized with the configured API key. Set jq to filter the JSON result, or xpath/css to extract from the xml/html rendering. Large results are compacted to fit the result budget; check compacted and hint in the output.",
	}, ToolCall(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_overview",
		Description: "Snapshot of the proxy: version, mode, hosts, contexts, alert counts by risk, active and spider scans, AJAX spider status and passive scan queue. Sections that fail are listed under errors; an unreachable proxy fails the whole tool.",
	}, ToolOverview(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_parse_list",
		Description: "Decode the legacy bracketed list text some ZAP calls return, e.g. \"[a, b, c]\", into an array of strings.",
	}, ToolParseList(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "zap_validate_calltable",
		Description: "Check a call table document (YAML or JSON) against the table schema and the call rules without loading it. Returns {valid, error, calls, overrides}; overrides are calls that would replace current entries.",
	}, ToolValidateTable(d))

	if d.Config.ExposeCallTools {
		RegisterCallTools(srv, d)
	}
}
