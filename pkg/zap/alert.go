package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Alert wraps the alert component.
type Alert struct{ base }

// AlertInfo is one alert raised by a scan rule.
type AlertInfo struct {
	ID          int
	PluginID    int
	AlertRef    string
	Name        string
	Risk        string
	Confidence  string
	URL         string
	Method      string
	Param       string
	Attack      string
	Evidence    string
	Description string
	Solution    string
	Reference   string
	CWEID       int
	WASCID      int
	MessageID   int
	Tags        map[string]string
}

// Risk levels accepted by AlertFilter.
const (
	RiskAny           = -1
	RiskInformational = 0
	RiskLow           = 1
	RiskMedium        = 2
	RiskHigh          = 3
)

// AlertFilter restricts alert listings.
type AlertFilter struct {
	Page
	Risk int // RiskAny or a risk level
}

// NewAlertFilter returns a filter that matches every alert.
func NewAlertFilter() AlertFilter {
	return AlertFilter{Risk: RiskAny}
}

func (f AlertFilter) params() *zapapi.Params {
	p := f.Page.params()
	if f.Risk >= 0 {
		p.SetInt("riskId", f.Risk)
	}
	return p
}

// Get returns an alert by ID.
func (a *Alert) Get(ctx context.Context, id int) (AlertInfo, error) {
	return view[AlertInfo](ctx, a.base, "alert", zapapi.NewParams().SetInt("id", id))
}

// List returns the alerts matching f.
func (a *Alert) List(ctx context.Context, f AlertFilter) ([]AlertInfo, error) {
	return view[[]AlertInfo](ctx, a.base, "alerts", f.params())
}

// Count returns the number of alerts matching f. Paging is ignored.
func (a *Alert) Count(ctx context.Context, f AlertFilter) (int, error) {
	p := zapapi.NewParams().SetIf("baseurl", f.BaseURL)
	if f.Risk >= 0 {
		p.SetInt("riskId", f.Risk)
	}
	return view[int](ctx, a.base, "numberOfAlerts", p)
}

// Summary returns the number of alerts per risk name.
func (a *Alert) Summary(ctx context.Context, baseURL string) (map[string]int, error) {
	return view[map[string]int](ctx, a.base, "alertsSummary", zapapi.NewParams().SetIf("baseurl", baseURL))
}

// Delete removes an alert.
func (a *Alert) Delete(ctx context.Context, id int) error {
	return a.action(ctx, "deleteAlert", zapapi.NewParams().SetInt("id", id))
}

// DeleteAll removes every alert.
func (a *Alert) DeleteAll(ctx context.Context) error {
	return a.action(ctx, "deleteAllAlerts", nil)
}
