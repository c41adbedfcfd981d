package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Ascan wraps the active scanner.
type Ascan struct{ base }

// ScanOptions are the optional arguments of an active scan. Zero values are
// not sent.
type ScanOptions struct {
	Recurse     *bool
	InScopeOnly *bool
	Policy      string
	Method      string
	PostData    string
	ContextID   int
}

// ScanInfo describes one scan in a scans listing.
type ScanInfo struct {
	ID       int    `json:"id"`
	Progress int    `json:"progress"`
	State    string `json:"state"`
}

func (o ScanOptions) apply(p *zapapi.Params) *zapapi.Params {
	setOptBool(p, "recurse", o.Recurse)
	setOptBool(p, "inScopeOnly", o.InScopeOnly)
	p.SetIf("scanPolicyName", o.Policy).SetIf("method", o.Method).SetIf("postData", o.PostData)
	setPositive(p, "contextId", o.ContextID)
	return p
}

// Scan starts an active scan of url and returns its ID.
func (a *Ascan) Scan(ctx context.Context, url string, opts ScanOptions) (int, error) {
	return actionResult[int](ctx, a.base, "scan", opts.apply(zapapi.NewParams().SetIf("url", url)))
}

// ScanAsUser starts an active scan authenticated as a context user.
func (a *Ascan) ScanAsUser(ctx context.Context, url string, contextID, userID int, opts ScanOptions) (int, error) {
	p := zapapi.NewParams().SetIf("url", url).SetInt("contextId", contextID).SetInt("userId", userID)
	setOptBool(p, "recurse", opts.Recurse)
	p.SetIf("scanPolicyName", opts.Policy).SetIf("method", opts.Method).SetIf("postData", opts.PostData)
	return actionResult[int](ctx, a.base, "scanAsUser", p)
}

// Status returns the progress percentage of scan id.
func (a *Ascan) Status(ctx context.Context, id int) (int, error) {
	return view[int](ctx, a.base, "status", scanID(id))
}

// Scans lists active scans.
func (a *Ascan) Scans(ctx context.Context) ([]ScanInfo, error) {
	return view[[]ScanInfo](ctx, a.base, "scans", nil)
}

// AlertIDs returns the IDs of the alerts raised by scan id.
func (a *Ascan) AlertIDs(ctx context.Context, id int) ([]int, error) {
	return view[[]int](ctx, a.base, "alertsIds", scanID(id))
}

// Policies returns the scan policy names.
func (a *Ascan) Policies(ctx context.Context) ([]string, error) {
	return view[[]string](ctx, a.base, "scanPolicyNames", nil)
}

// Stop stops scan id.
func (a *Ascan) Stop(ctx context.Context, id int) error {
	return a.action(ctx, "stop", scanID(id))
}

// Pause pauses scan id.
func (a *Ascan) Pause(ctx context.Context, id int) error {
	return a.action(ctx, "pause", scanID(id))
}

// Resume resumes scan id.
func (a *Ascan) Resume(ctx context.Context, id int) error {
	return a.action(ctx, "resume", scanID(id))
}

// Remove removes scan id.
func (a *Ascan) Remove(ctx context.Context, id int) error {
	return a.action(ctx, "removeScan", scanID(id))
}

// StopAll stops every active scan.
func (a *Ascan) StopAll(ctx context.Context) error {
	return a.action(ctx, "stopAllScans", nil)
}

// ExcludeFromScan skips URLs that match regex in future scans.
func (a *Ascan) ExcludeFromScan(ctx context.Context, regex string) error {
	return a.action(ctx, "excludeFromScan", zapapi.NewParams().Set("regex", regex))
}

func scanID(id int) *zapapi.Params {
	return zapapi.NewParams().SetInt("scanId", id)
}
