package zapapi

import (
	"net/url"
	"strings"
)

// BaseLocator is the host every API locator is addressed to. The proxy
// answers requests for this host itself.
const BaseLocator = "http://zap/"

// Format is the response rendering requested from the API.
type Format string

// Response formats.
const (
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatHTML  Format = "html"
	FormatOther Format = "other"
)

// CallKind classifies a remote method.
type CallKind string

// Call kinds.
const (
	View   CallKind = "view"
	Action CallKind = "action"
	Other  CallKind = "other"
)

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatXML, FormatHTML, FormatOther:
		return f, true
	}
	return "", false
}

// ParseCallKind parses a call kind name case-insensitively.
func ParseCallKind(s string) (CallKind, bool) {
	switch k := CallKind(strings.ToLower(s)); k {
	case View, Action, Other:
		return k, true
	}
	return "", false
}

// Build returns the canonical request locator for a call.
//
// The result is http://zap/{format}/{component}/{kind}/{method}/ with format
// and kind lower-cased. When params holds at least one entry the encoded
// query is appended after a '?', in insertion order. Build is pure.
func Build(format Format, component string, kind CallKind, method string, params *Params) string {
	var sb strings.Builder
	sb.WriteString(BaseLocator)
	sb.WriteString(strings.ToLower(string(format)))
	sb.WriteByte('/')
	sb.WriteString(component)
	sb.WriteByte('/')
	sb.WriteString(strings.ToLower(string(kind)))
	sb.WriteByte('/')
	sb.WriteString(method)
	sb.WriteByte('/')

	if params.Len() > 0 {
		sb.WriteByte('?')
		sb.WriteString(params.Encode())
	}
	return sb.String()
}

// EncodeComponent percent-encodes s for use as a query key or value.
// Only ALPHA, DIGIT and "-._~" are left literal; space becomes %20.
func EncodeComponent(s string) string {
	// QueryEscape already escapes everything outside the unreserved set;
	// only its '+' for space differs from the strict form.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
