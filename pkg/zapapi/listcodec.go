package zapapi

import (
	"regexp"
	"strings"
)

var legacyListPattern = regexp.MustCompile(`(?s)^\[(.*)\]$`)

// ParseListString decodes the legacy "[a, b, c]" text some endpoints return
// in place of a JSON array.
//
// The trimmed input must be wrapped in brackets; the interior is split on
// ", " exactly and empty segments are dropped. Input that does not match
// yields an empty slice. Well-formed JSON arrays belong to the JSON decoder,
// not here: `["a","b"]` decodes to the quoted segments.
func ParseListString(input string) []string {
	m := legacyListPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return []string{}
	}

	parts := strings.Split(m[1], ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
