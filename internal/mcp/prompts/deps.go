// Package prompts contains MCP prompt implementations for ZAP workflows.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	// APIKeyConfigured is false when actions will be rejected by a proxy
	// that requires a key.
	APIKeyConfigured bool
	// ProxyVersion is the configured ZAP version, or "".
	ProxyVersion string
}
