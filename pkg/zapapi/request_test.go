package zapapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		comp     string
		kind     CallKind
		method   string
		params   *Params
		expected string
	}{
		{
			name:     "no params",
			format:   FormatJSON,
			comp:     "core",
			kind:     View,
			method:   "version",
			expected: "http://zap/json/core/view/version/",
		},
		{
			name:     "empty params appends no query",
			format:   FormatJSON,
			comp:     "core",
			kind:     View,
			method:   "version",
			params:   NewParams(),
			expected: "http://zap/json/core/view/version/",
		},
		{
			name:     "insertion order preserved",
			format:   FormatJSON,
			comp:     "ascan",
			kind:     Action,
			method:   "scan",
			params:   NewParams().Set("url", "http://x").SetBool("recurse", true),
			expected: "http://zap/json/ascan/action/scan/?url=http%3A%2F%2Fx&recurse=true",
		},
		{
			name:     "reverse insertion order preserved",
			format:   FormatJSON,
			comp:     "ascan",
			kind:     Action,
			method:   "scan",
			params:   NewParams().SetBool("recurse", true).Set("url", "http://x"),
			expected: "http://zap/json/ascan/action/scan/?recurse=true&url=http%3A%2F%2Fx",
		},
		{
			name:     "null serializes as empty value",
			format:   FormatJSON,
			comp:     "core",
			kind:     View,
			method:   "urls",
			params:   NewParams().SetNull("baseurl").Set("x", "1"),
			expected: "http://zap/json/core/view/urls/?baseurl=&x=1",
		},
		{
			name:     "format and kind lower-cased",
			format:   Format("XML"),
			comp:     "core",
			kind:     CallKind("VIEW"),
			method:   "hosts",
			expected: "http://zap/xml/core/view/hosts/",
		},
		{
			name:     "other call",
			format:   FormatOther,
			comp:     "core",
			kind:     Other,
			method:   "htmlreport",
			expected: "http://zap/other/core/other/htmlreport/",
		},
		{
			name:     "keys and values encoded strictly",
			format:   FormatJSON,
			comp:     "search",
			kind:     View,
			method:   "urlsByUrlRegex",
			params:   NewParams().Set("regex", "a b<script>&'\"").Set("k y", "~-._"),
			expected: "http://zap/json/search/view/urlsByUrlRegex/?regex=a%20b%3Cscript%3E%26%27%22&k%20y=~-._",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.format, tt.comp, tt.kind, tt.method, tt.params)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	p := NewParams().Set("url", "http://example.com/?q=1").SetNull("contextId").SetInt("maxChildren", 5)
	first := Build(FormatJSON, "spider", Action, "scan", p)
	second := Build(FormatJSON, "spider", Action, "scan", p)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, p.Len(), "Build must not modify params")
}

func TestBuild_NullNeverLiteral(t *testing.T) {
	got := Build(FormatJSON, "core", View, "alerts", NewParams().SetValue("baseurl", nil))
	assert.Equal(t, "http://zap/json/core/view/alerts/?baseurl=", got)
	assert.NotContains(t, got, "null")
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "abcXYZ019-_.~", EncodeComponent("abcXYZ019-_.~"))
	assert.Equal(t, "%20%2B%2F%3F%23%25", EncodeComponent(" +/?#%"))
	assert.Equal(t, "%C3%A9", EncodeComponent("é"))
}

func TestParseFormatAndKind(t *testing.T) {
	f, ok := ParseFormat("HTML")
	assert.True(t, ok)
	assert.Equal(t, FormatHTML, f)

	_, ok = ParseFormat("yaml")
	assert.False(t, ok)

	k, ok := ParseCallKind("Action")
	assert.True(t, ok)
	assert.Equal(t, Action, k)

	_, ok = ParseCallKind("delete")
	assert.False(t, ok)
}
