package catalog

import (
	"strings"
	"unicode"
)

// tokenDelimiters separate tokens in names and descriptions.
const tokenDelimiters = "/?&=.-_:,;()\"'"

var stopWords = map[string]bool{
	"the": true, "of": true, "to": true, "by": true, "an": true, "or": true,
	"and": true, "is": true, "in": true, "as": true, "on": true, "for": true,
	"with": true, "from": true, "when": true, "this": true, "its": true,
}

// Tokenize splits s into lower-case search tokens. camelCase words are split
// ("urlsByUrlRegex" yields "urls", "url", "regex"), tokens shorter than two
// characters and stop words are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	var out []string
	for _, f := range fields {
		for _, w := range splitCamel(f) {
			w = strings.ToLower(w)
			if len(w) < 2 || stopWords[w] {
				continue
			}
			out = append(out, w)
		}
	}
	return out
}

// splitCamel splits "scanAsUser" into "scan", "As", "User" and keeps runs of
// capitals together ("HTMLReport" yields "HTML", "Report").
func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur) ||
			unicode.IsLetter(prev) && unicode.IsDigit(cur) ||
			unicode.IsDigit(prev) && unicode.IsLetter(cur) ||
			unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}
