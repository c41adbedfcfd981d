package calltable

import "github.com/usestring/zap-mcp/pkg/zapapi"

func req(name, desc string) Param { return Param{Name: name, Required: true, Description: desc} }
func opt(name, desc string) Param { return Param{Name: name, Description: desc} }

func view(component, method, key, desc string, params ...Param) Call {
	return Call{Component: component, Kind: zapapi.View, Method: method, ResultKey: key, Description: desc, Params: params}
}

func action(component, method, key, desc string, params ...Param) Call {
	return Call{Component: component, Kind: zapapi.Action, Method: method, ResultKey: key, Description: desc, Params: params}
}

func other(component, method string, shape ResultShape, desc string, params ...Param) Call {
	return Call{Component: component, Kind: zapapi.Other, Method: method, Result: shape, RequiresKey: true, Description: desc, Params: params}
}

func (c Call) legacyList() Call {
	c.Result = ResultLegacyList
	return c
}

func (c Call) since(constraint string) Call {
	c.Since = constraint
	return c
}

func (c Call) legacy(note, replacement string) Call {
	c.Legacy = &Legacy{Note: note, Replacement: replacement}
	return c
}

// Shared parameter descriptions.
var (
	pBaseURL  = opt("baseurl", "Only include results under this URL prefix")
	pStart    = opt("start", "Offset of the first result")
	pCount    = opt("count", "Maximum number of results")
	pRiskID   = opt("riskId", "Risk filter: 0 info, 1 low, 2 medium, 3 high")
	pScanID   = opt("scanId", "Scan ID (default: most recent scan)")
	pCtxName  = req("contextName", "Context name")
	pCtxID    = req("contextId", "Context ID")
	pUserID   = req("userId", "User ID")
	pRegex    = req("regex", "Regular expression")
	pScript   = req("scriptName", "Script name")
	pReqScan  = req("scanId", "Scan ID")
	pMsgID    = req("id", "History ID of the message")
	pTarget   = opt("url", "Target URL")
	pInScope  = opt("inScopeOnly", "Only scan URLs in scope")
	pRecurse  = opt("recurse", "Scan the nodes under the URL as well")
	pSubtree  = opt("subtreeOnly", "Restrict the crawl to the URL's subtree")
	pContextN = opt("contextName", "Restrict to the named context")
)

var builtinCalls = []Call{
	// core
	view("core", "version", "version", "ZAP version"),
	view("core", "hosts", "hosts", "Hosts accessed through or by ZAP"),
	view("core", "sites", "sites", "Sites accessed through or by ZAP (scheme and port included)"),
	view("core", "urls", "urls", "URLs accessed through or by ZAP", pBaseURL),
	view("core", "alerts", "alerts", "Alerts raised by ZAP", pBaseURL, pStart, pCount, pRiskID, pContextN),
	view("core", "numberOfAlerts", "numberOfAlerts", "Number of alerts", pBaseURL, pRiskID),
	view("core", "numberOfMessages", "numberOfMessages", "Number of messages in the history", pBaseURL),
	view("core", "message", "message", "HTTP message with the given history ID", pMsgID),
	view("core", "messages", "messages", "HTTP messages in the history", pBaseURL, pStart, pCount),
	view("core", "mode", "mode", "Current mode: safe, protect, standard or attack"),
	view("core", "excludedFromProxy", "excludedFromProxy", "Regexes of URLs excluded from the proxy"),
	view("core", "sessionLocation", "sessionLocation", "Path of the current session file"),
	view("core", "optionProxyChainSkipName", "ProxyChainSkipName", "Hosts that bypass the outgoing proxy").
		legacy("Returns a semicolon separated string and ignores network add-on settings", "network/view/getHttpProxyExclusions"),
	action("core", "accessUrl", "accessUrl", "Access a URL through ZAP", req("url", "URL to access"), opt("followRedirects", "Follow redirects")),
	action("core", "newSession", "", "Create a new session", opt("name", "Session name or path"), opt("overwrite", "Overwrite an existing session file")),
	action("core", "saveSession", "", "Save the session", req("name", "Session name or path"), opt("overwrite", "Overwrite an existing session file")),
	action("core", "setMode", "", "Set the mode", req("mode", "safe, protect, standard or attack")),
	action("core", "deleteAllAlerts", "", "Delete all alerts"),
	action("core", "excludeFromProxy", "", "Exclude URLs matching a regex from the proxy", pRegex),
	action("core", "clearExcludedFromProxy", "", "Clear the proxy exclusion list"),
	action("core", "runGarbageCollection", "", "Run the JVM garbage collector"),
	action("core", "shutdown", "", "Shut down ZAP"),
	other("core", "htmlreport", ResultText, "Traditional HTML report"),
	other("core", "xmlreport", ResultText, "Traditional XML report"),
	other("core", "jsonreport", ResultText, "Traditional JSON report"),
	other("core", "mdreport", ResultText, "Traditional Markdown report").since(">= 2.8.0"),
	other("core", "rootcert", ResultBinary, "Root CA certificate used by the local proxies"),
	other("core", "proxy.pac", ResultText, "Proxy auto-configuration script"),
	other("core", "messageHar", ResultBinary, "HAR of the message with the given history ID", pMsgID).
		legacy("Drops request bodies larger than the HAR entry limit", "exim/other/exportHarById"),
	other("core", "messagesHar", ResultBinary, "HAR of the messages in the history", pBaseURL, pStart, pCount).
		legacy("Drops request bodies larger than the HAR entry limit", "exim/other/exportHar"),

	// exim
	other("exim", "exportHar", ResultBinary, "Export messages as HAR", pBaseURL, pStart, pCount).since(">= 2.10.0"),
	other("exim", "exportHarById", ResultBinary, "Export the messages with the given IDs as HAR", req("ids", "Comma separated history IDs")).since(">= 2.10.0"),

	// network
	view("network", "getHttpProxyExclusions", "httpProxyExclusions", "Hosts excluded from the outgoing proxy").since(">= 2.10.0"),
	view("network", "getHttpProxy", "httpProxy", "Outgoing HTTP proxy").since(">= 2.10.0"),

	// ascan
	view("ascan", "status", "status", "Progress percentage of an active scan", pScanID),
	view("ascan", "scans", "scans", "Active scans"),
	view("ascan", "scanProgress", "scanProgress", "Per-host, per-rule progress of an active scan", pScanID),
	view("ascan", "alertsIds", "alertsIds", "IDs of alerts raised by a scan", pReqScan),
	view("ascan", "messagesIds", "messagesIds", "IDs of messages sent by a scan", pReqScan),
	view("ascan", "scanPolicyNames", "scanPolicyNames", "Scan policy names"),
	view("ascan", "excludedFromScan", "excludedFromScan", "Regexes excluded from active scans"),
	action("ascan", "scan", "scan", "Start an active scan",
		pTarget, pRecurse, pInScope, opt("scanPolicyName", "Scan policy"), opt("method", "HTTP method"),
		opt("postData", "POST body"), opt("contextId", "Context ID")),
	action("ascan", "scanAsUser", "scanAsUser", "Start an active scan as a user",
		pTarget, opt("contextId", "Context ID"), opt("userId", "User ID"), pRecurse,
		opt("scanPolicyName", "Scan policy"), opt("method", "HTTP method"), opt("postData", "POST body")),
	action("ascan", "stop", "", "Stop an active scan", pReqScan),
	action("ascan", "pause", "", "Pause an active scan", pReqScan),
	action("ascan", "resume", "", "Resume an active scan", pReqScan),
	action("ascan", "removeScan", "", "Remove an active scan", pReqScan),
	action("ascan", "stopAllScans", "", "Stop all active scans"),
	action("ascan", "removeAllScans", "", "Remove all active scans"),
	action("ascan", "excludeFromScan", "", "Exclude URLs matching a regex from active scans", pRegex),

	// spider
	view("spider", "status", "status", "Progress percentage of a spider scan", pScanID),
	view("spider", "results", "results", "URLs found by a spider scan", pScanID),
	view("spider", "fullResults", "fullResults", "Messages and out-of-scope URLs of a spider scan", pReqScan),
	view("spider", "scans", "scans", "Spider scans"),
	view("spider", "optionMaxDepth", "MaxDepth", "Maximum crawl depth"),
	view("spider", "optionScopeText", "ScopeText", "Spider scope regex").
		legacy("Only reflects the first scope entry", "spider/view/optionDomainsAlwaysInScope"),
	view("spider", "optionDomainsAlwaysInScope", "DomainsAlwaysInScope", "Domains always in scope"),
	action("spider", "scan", "scan", "Start a spider scan",
		pTarget, opt("maxChildren", "Maximum children per node"), pRecurse, pContextN, pSubtree),
	action("spider", "stop", "", "Stop a spider scan", pScanID),
	action("spider", "pause", "", "Pause a spider scan", pReqScan),
	action("spider", "resume", "", "Resume a spider scan", pReqScan),
	action("spider", "removeAllScans", "", "Remove all spider scans"),
	action("spider", "setOptionMaxDepth", "", "Set the maximum crawl depth", req("Integer", "Depth")),

	// ajaxSpider
	view("ajaxSpider", "status", "status", "Status of the AJAX spider: running or stopped"),
	view("ajaxSpider", "results", "results", "Messages found by the AJAX spider", pStart, pCount),
	view("ajaxSpider", "numberOfResults", "numberOfResults", "Number of messages found by the AJAX spider"),
	action("ajaxSpider", "scan", "", "Start the AJAX spider", pTarget, opt("inScope", "Only crawl in-scope URLs"), pContextN, pSubtree),
	action("ajaxSpider", "stop", "", "Stop the AJAX spider"),

	// pscan
	view("pscan", "recordsToScan", "recordsToScan", "Number of records the passive scanner still has to scan"),
	view("pscan", "scanners", "scanners", "Passive scan rules"),
	action("pscan", "enableAllScanners", "", "Enable all passive scan rules"),
	action("pscan", "disableAllScanners", "", "Disable all passive scan rules"),
	action("pscan", "setEnabled", "", "Enable or disable passive scanning", req("enabled", "true or false")),

	// search
	view("search", "urlsByUrlRegex", "urlsByUrlRegex", "URLs whose URL matches a regex", pRegex, pBaseURL, pStart, pCount),
	view("search", "urlsByRequestRegex", "urlsByRequestRegex", "URLs whose request matches a regex", pRegex, pBaseURL, pStart, pCount),
	view("search", "urlsByResponseRegex", "urlsByResponseRegex", "URLs whose response matches a regex", pRegex, pBaseURL, pStart, pCount),
	view("search", "messagesByUrlRegex", "messagesByUrlRegex", "Messages whose URL matches a regex", pRegex, pBaseURL, pStart, pCount),
	other("search", "harByUrlRegex", ResultBinary, "HAR of messages whose URL matches a regex", pRegex, pBaseURL, pStart, pCount),

	// context
	view("context", "contextList", "contextList", "Context names").legacyList(),
	view("context", "includeRegexs", "includeRegexs", "Include regexes of a context", pCtxName).legacyList(),
	view("context", "excludeRegexs", "excludeRegexs", "Exclude regexes of a context", pCtxName).legacyList(),
	view("context", "technologyList", "technologyList", "Technologies known to ZAP").legacyList(),
	view("context", "context", "context", "Details of a context", pCtxName),
	action("context", "newContext", "contextId", "Create a context", pCtxName),
	action("context", "removeContext", "", "Remove a context", pCtxName),
	action("context", "includeInContext", "", "Add an include regex to a context", pCtxName, pRegex),
	action("context", "excludeFromContext", "", "Add an exclude regex to a context", pCtxName, pRegex),
	action("context", "setContextInScope", "", "Set whether a context is in scope", pCtxName, req("booleanInScope", "true or false")),
	action("context", "exportContext", "", "Export a context to a file", pCtxName, req("contextFile", "File path")),
	action("context", "importContext", "contextId", "Import a context from a file", req("contextFile", "File path")),

	// users
	view("users", "usersList", "usersList", "Users, optionally of one context", opt("contextId", "Context ID")),
	action("users", "newUser", "userId", "Create a user", pCtxID, req("name", "User name")),
	action("users", "removeUser", "", "Remove a user", pCtxID, pUserID),
	action("users", "setUserEnabled", "", "Enable or disable a user", pCtxID, pUserID, req("enabled", "true or false")),
	action("users", "setAuthenticationCredentials", "", "Set a user's authentication credentials",
		pCtxID, pUserID, opt("authCredentialsConfigParams", "URL-encoded credential parameters")),

	// params
	view("params", "params", "Parameters", "Parameters seen per site", opt("site", "Site, e.g. https://example.com:443")),

	// alert
	view("alert", "alert", "alert", "Alert with the given ID", req("id", "Alert ID")),
	view("alert", "alerts", "alerts", "Alerts", pBaseURL, pStart, pCount, pRiskID),
	view("alert", "alertsSummary", "alertsSummary", "Number of alerts per risk level", pBaseURL).since(">= 2.8.0"),
	view("alert", "numberOfAlerts", "numberOfAlerts", "Number of alerts", pBaseURL, pRiskID),
	action("alert", "deleteAllAlerts", "", "Delete all alerts"),
	action("alert", "deleteAlert", "", "Delete an alert", req("id", "Alert ID")),

	// script
	view("script", "listScripts", "listScripts", "Loaded scripts"),
	view("script", "listEngines", "listEngines", "Available script engines"),
	action("script", "load", "", "Load a script from a file",
		pScript, req("scriptType", "Script type"), req("scriptEngine", "Script engine"), req("fileName", "Script file"),
		opt("scriptDescription", "Description"), opt("charset", "File charset")),
	action("script", "enable", "", "Enable a script", pScript),
	action("script", "disable", "", "Disable a script", pScript),
	action("script", "remove", "", "Remove a script", pScript),
	action("script", "runStandAloneScript", "", "Run a stand-alone script", pScript),

	// autoupdate
	view("autoupdate", "latestVersionNumber", "latestVersionNumber", "Latest released ZAP version"),
	view("autoupdate", "isLatestVersion", "isLatestVersion", "Whether the running ZAP is the latest release"),
	action("autoupdate", "downloadLatestRelease", "", "Download the latest release"),

	// reports
	view("reports", "templates", "templates", "Report templates").since(">= 2.11.0"),
	action("reports", "generate", "generate", "Generate a report, returns the file path",
		req("title", "Report title"), req("template", "Template name"), opt("theme", "Template theme"),
		opt("description", "Report description"), opt("contexts", "Pipe separated contexts"),
		opt("sites", "Pipe separated sites"), opt("sections", "Pipe separated sections"),
		opt("includedConfidences", "Pipe separated confidences"), opt("includedRisks", "Pipe separated risks"),
		opt("reportFileName", "File name"), opt("reportFileNamePattern", "File name pattern"),
		opt("reportDir", "Output directory"), opt("display", "Open the report when done")).since(">= 2.11.0"),
}

// Builtin returns a fresh table of the ZAP calls this module knows about.
func Builtin() *Table {
	t, err := New(builtinCalls...)
	if err != nil {
		panic("calltable: invalid builtin table: " + err.Error())
	}
	return t
}
