package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"urlsByUrlRegex", []string{"urls", "url", "regex"}},
		{"scanAsUser", []string{"scan", "user"}},
		{"HTMLReport", []string{"html", "report"}},
		{"ajaxSpider/view/status", []string{"ajax", "spider", "view", "status"}},
		{"Progress percentage of an active scan", []string{"progress", "percentage", "active", "scan"}},
		{"proxy.pac", []string{"proxy", "pac"}},
		{"exportHarById", []string{"export", "har", "id"}},
		{"a b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
