package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var riskLevels = map[string]int{
	"informational": 0,
	"low":           1,
	"medium":        2,
	"high":          3,
}

// HandleTriageAlerts implements the alert review workflow.
func HandleTriageAlerts(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments
		baseURL := strings.TrimSpace(args["baseurl"])
		minRiskName := strings.ToLower(strings.TrimSpace(args["min_risk"]))
		if minRiskName == "" {
			minRiskName = "low"
		}
		minRisk, ok := riskLevels[minRiskName]
		if !ok {
			return nil, fmt.Errorf("min_risk must be informational, low, medium or high, got %q", minRiskName)
		}

		filter := ""
		if baseURL != "" {
			filter = fmt.Sprintf("baseurl: %q", baseURL)
		}

		var sb strings.Builder

		sb.WriteString("# Triage ZAP Alerts\n\n")
		sb.WriteString("You are a security analyst reviewing automated scanner findings. ")
		sb.WriteString("Your goal is a short, evidence-backed list of real issues, with noise called out separately.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		fmt.Fprintf(&sb, "1. **Size the problem** - `zap_call(name: \"alert/view/alertsSummary\", args: {%s})`\n", filter)
		sb.WriteString("   - Counts per risk level; if every level is 0, say so and stop\n\n")

		sb.WriteString("2. **Group by rule** - for each risk level from High down to ")
		sb.WriteString(capitalize(minRiskName))
		sb.WriteString(":\n")
		riskArgs := "riskId: LEVEL"
		if filter != "" {
			riskArgs = filter + ", " + riskArgs
		}
		fmt.Fprintf(&sb, "   - `zap_call(name: \"alert/view/alerts\", args: {%s, start: 0, count: 100}, jq: \"group_by(.pluginId) | map({rule: .[0].alert, pluginId: .[0].pluginId, confidence: .[0].confidence, count: length, urls: (map(.url) | unique | .[:5])})\")`\n", riskArgs)
		fmt.Fprintf(&sb, "   - LEVEL runs from 3 (High) to %d (%s)\n", minRisk, capitalize(minRiskName))
		sb.WriteString("   - Page with `start` while a page returns 100 alerts\n\n")

		sb.WriteString("3. **Check evidence** - for the top rules, fetch one alert: `zap_call(name: \"alert/view/alert\", args: {id: ID})`\n")
		sb.WriteString("   - Read `evidence`, `param`, `attack` and `otherinfo`\n")
		sb.WriteString("   - Fetch the message with `zap_call(name: \"core/view/message\", args: {id: MESSAGE_ID}, jq: \"{requestHeader, responseHeader}\")` when evidence is unclear\n\n")

		sb.WriteString("4. **Classify**\n")
		sb.WriteString("   - **Likely true positive**: evidence shows attacker-controlled input reflected or executed, or a sensitive response\n")
		sb.WriteString("   - **Needs manual check**: Low confidence, or evidence is a generic pattern match\n")
		sb.WriteString("   - **Noise**: header hygiene on static assets, informational fingerprints, duplicates across URLs\n\n")

		sb.WriteString("## Output Format\n\n")
		sb.WriteString("| Risk | Rule | Confidence | URLs | Verdict | Evidence |\n")
		sb.WriteString("|------|------|------------|------|---------|----------|\n\n")
		sb.WriteString("Follow the table with remediation notes for each true positive.\n\n")

		sb.WriteString("## Tips\n\n")
		sb.WriteString("- Risk IDs: 0 Informational, 1 Low, 2 Medium, 3 High\n")
		sb.WriteString("- Results are compacted when large; narrow with `jq` rather than setting `raw`\n")
		if !cfg.APIKeyConfigured {
			sb.WriteString("- No API key is configured, so do not try to delete or edit alerts\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for triaging ZAP alerts",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
