package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Search wraps regex search over the history.
type Search struct{ base }

// SearchResult is one matching history entry.
type SearchResult struct {
	ID     int
	Method string
	URL    string
	Code   int
	RTT    int
}

// URLsByURLRegex finds entries whose URL matches regex.
func (s *Search) URLsByURLRegex(ctx context.Context, regex string, page Page) ([]SearchResult, error) {
	return view[[]SearchResult](ctx, s.base, "urlsByUrlRegex", searchParams(regex, page))
}

// URLsByRequestRegex finds entries whose request matches regex.
func (s *Search) URLsByRequestRegex(ctx context.Context, regex string, page Page) ([]SearchResult, error) {
	return view[[]SearchResult](ctx, s.base, "urlsByRequestRegex", searchParams(regex, page))
}

// URLsByResponseRegex finds entries whose response matches regex.
func (s *Search) URLsByResponseRegex(ctx context.Context, regex string, page Page) ([]SearchResult, error) {
	return view[[]SearchResult](ctx, s.base, "urlsByResponseRegex", searchParams(regex, page))
}

// HARByURLRegex exports matching entries as HAR, unparsed.
func (s *Search) HARByURLRegex(ctx context.Context, regex string, page Page) ([]byte, error) {
	return s.otherData(ctx, "harByUrlRegex", searchParams(regex, page))
}

func searchParams(regex string, page Page) *zapapi.Params {
	p := zapapi.NewParams().Set("regex", regex).SetIf("baseurl", page.BaseURL)
	setPositive(p, "start", page.Start)
	setPositive(p, "count", page.Count)
	return p
}
