package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleActiveScanWorkflow implements the spider-then-scan workflow.
func HandleActiveScanWorkflow(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments
		target := strings.TrimSpace(args["target"])
		if target == "" {
			return nil, fmt.Errorf("target is required")
		}
		contextName := strings.TrimSpace(args["context"])
		ajax := strings.EqualFold(strings.TrimSpace(args["ajax"]), "true")

		var sb strings.Builder

		sb.WriteString("# Active Scan Workflow\n\n")
		fmt.Fprintf(&sb, "You are running an authorized security test of `%s` through the ZAP proxy. ", target)
		sb.WriteString("Scan only this target and report findings with evidence.\n\n")

		if !cfg.APIKeyConfigured {
			sb.WriteString("> **Note**: no API key is configured. If ZAP rejects actions with `ZAP_REMOTE_ERROR` (bad_api_key), ")
			sb.WriteString("ask the user to set ZAP_API_KEY and restart the server.\n\n")
		}

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Check the proxy** - `zap_overview()`\n")
		sb.WriteString("   - Note the version and mode; `protect` mode only allows attacks on in-scope URLs, `safe` mode forbids them\n")
		sb.WriteString("   - If the tool fails with `ZAP_TRANSPORT`, the proxy is not reachable; stop and tell the user\n\n")

		step := 2
		if contextName != "" {
			fmt.Fprintf(&sb, "%d. **Confirm the context** - `zap_call(name: \"context/view/context\", args: {contextName: %q})`\n", step, contextName)
			sb.WriteString("   - Check `includedRegexs` covers the target; use `context/action/includeInContext` to add it if not\n\n")
			step++
		}

		fmt.Fprintf(&sb, "%d. **Seed the site tree** - `zap_call(name: \"core/action/accessUrl\", args: {url: %q})`\n\n", step, target)
		step++

		spiderArgs := fmt.Sprintf("url: %q", target)
		if contextName != "" {
			spiderArgs += fmt.Sprintf(", contextName: %q", contextName)
		}
		fmt.Fprintf(&sb, "%d. **Spider** - `zap_call(name: \"spider/action/scan\", args: {%s})`\n", step, spiderArgs)
		sb.WriteString("   - The result is the scan ID\n")
		sb.WriteString("   - Poll `zap_call(name: \"spider/view/status\", args: {scanId: ID})` until it returns \"100\"\n")
		sb.WriteString("   - Summarize with `zap_call(name: \"spider/view/results\", args: {scanId: ID}, jq: \"length\")`\n\n")
		step++

		if ajax {
			fmt.Fprintf(&sb, "%d. **AJAX spider** - `zap_call(name: \"ajaxSpider/action/scan\", args: {url: %q})`\n", step, target)
			sb.WriteString("   - Poll `zap_call(name: \"ajaxSpider/view/status\")` until it returns \"stopped\"\n")
			sb.WriteString("   - This can take minutes; stop it with `ajaxSpider/action/stop` if the user asks\n\n")
			step++
		}

		fmt.Fprintf(&sb, "%d. **Wait for passive scanning** - poll `zap_call(name: \"pscan/view/recordsToScan\")` until it returns \"0\"\n\n", step)
		step++

		scanArgs := fmt.Sprintf("url: %q, recurse: true", target)
		if contextName != "" {
			scanArgs += ", contextId: CONTEXT_ID"
		}
		fmt.Fprintf(&sb, "%d. **Active scan** - `zap_call(name: \"ascan/action/scan\", args: {%s})`\n", step, scanArgs)
		if contextName != "" {
			sb.WriteString("   - CONTEXT_ID is the `id` returned by the context step\n")
		}
		sb.WriteString("   - Poll `zap_call(name: \"ascan/view/status\", args: {scanId: ID})` until \"100\"; do not poll faster than every 10 seconds\n")
		sb.WriteString("   - Use `ascan/action/pause`, `ascan/action/resume` or `ascan/action/stop` if asked\n\n")
		step++

		fmt.Fprintf(&sb, "%d. **Summarize** - follow the `triage_alerts` prompt with `baseurl: %q`\n\n", step, target)

		sb.WriteString("## Tips\n\n")
		sb.WriteString("- Use `zap_find_calls(query: \"...\")` when you need a call not listed here, then `zap_describe_call` for its parameters\n")
		sb.WriteString("- IDs and counts come back as strings; pass them back unchanged\n")
		sb.WriteString("- Prefer `jq` on `zap_call` over fetching whole result sets\n")
		if cfg.ProxyVersion != "" {
			fmt.Fprintf(&sb, "- The proxy is configured as ZAP %s; calls needing a newer version are refused\n", cfg.ProxyVersion)
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for spidering and actively scanning " + target,
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
