// Package mcpsrv provides an extensible MCP server for the ZAP API.
//
// The server exposes the call table through builtin tools (zap_find_calls,
// zap_describe_call, zap_call, zap_overview, zap_parse_list,
// zap_validate_calltable), resources and prompts. Users can extend it with
// custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server for a proxy on localhost:8080:
//
//	server, err := mcpsrv.NewServer(zapapi.New(zapapi.WithAPIKey(key)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools that use the typed accessors:
//
//	type HostsOutput struct {
//	    Hosts []string `json:"hosts,omitzero"`
//	}
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "my_hosts", Description: "Hosts seen by ZAP"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, HostsOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, HostsOutput, error) {
//	            hosts, err := d.ZAP.Core.Hosts(ctx)
//	            return nil, HostsOutput{Hosts: hosts}, err
//	        }
//	    },
//	)
//
// # Configuration
//
// Settings not given as options are read from the environment (ZAP_VERSION,
// ZAP_CALLTABLE_FILE, MCP_EXPOSE_CALL_TOOLS, LOG_LEVEL and so on):
//
//	server, err := mcpsrv.NewServer(
//	    client,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithProxyVersion("2.14.0"),
//	)
package mcpsrv
