package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "active_scan_workflow",
		Description: "RECOMMENDED: Spider and actively scan a target with ZAP, polling progress and summarizing the alerts found. Provides the exact calls and arguments to use.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "target",
				Description: "Target URL, e.g. https://app.example.com",
				Required:    true,
			},
			{
				Name:        "context",
				Description: "Existing ZAP context name to restrict the scan to",
				Required:    false,
			},
			{
				Name:        "ajax",
				Description: "Set to true to also run the AJAX spider for JavaScript-heavy applications",
				Required:    false,
			},
		},
	}, HandleActiveScanWorkflow(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "triage_alerts",
		Description: "RECOMMENDED: Review the alerts ZAP has raised, group them by risk and rule, and separate likely true positives from noise.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "baseurl",
				Description: "Only consider alerts under this URL prefix",
				Required:    false,
			},
			{
				Name:        "min_risk",
				Description: "Lowest risk to include: informational, low, medium or high (default: low)",
				Required:    false,
			},
		},
	}, HandleTriageAlerts(cfg))
}
