// Package overview collects a snapshot of proxy state with concurrent view
// calls.
package overview

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/zap-mcp/pkg/zap"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// DefaultConcurrency bounds the number of calls in flight.
const DefaultConcurrency = 4

// Snapshot is the collected state. Sections that failed are listed in
// Errors and left at their zero value.
type Snapshot struct {
	Version      string            `json:"version"`
	Mode         string            `json:"mode,omitempty"`
	Hosts        []string          `json:"hosts,omitzero"`
	Contexts     []string          `json:"contexts,omitzero"`
	AlertCount   int               `json:"alert_count"`
	AlertsByRisk map[string]int    `json:"alerts_by_risk,omitempty"`
	ActiveScans  []zap.ScanInfo    `json:"active_scans,omitzero"`
	SpiderScans  []zap.ScanInfo    `json:"spider_scans,omitzero"`
	AjaxSpider   string            `json:"ajax_spider,omitempty"`
	PassiveQueue int               `json:"passive_queue"`
	Errors       map[string]string `json:"errors,omitempty"`
	DurationMs   int64             `json:"duration_ms"`
}

// Option configures Collect.
type Option func(*options)

type options struct {
	concurrency int
}

// WithConcurrency sets how many calls run at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Collect fetches every section. A failing section is recorded in
// Snapshot.Errors; a transport failure aborts the whole snapshot because the
// proxy is unreachable.
func Collect(ctx context.Context, z *zap.ZAP, opts ...Option) (*Snapshot, error) {
	o := options{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	snap := &Snapshot{
		Hosts:       []string{},
		Contexts:    []string{},
		ActiveScans: []zap.ScanInfo{},
		SpiderScans: []zap.ScanInfo{},
	}
	var mu sync.Mutex
	failures := make(map[string]string)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	section := func(name string, fetch func(ctx context.Context) error) {
		g.Go(func() error {
			err := fetch(ctx)
			if err == nil {
				return nil
			}
			if zapapi.KindOf(err) == zapapi.KindTransport || errors.Is(err, context.Canceled) {
				return err
			}
			mu.Lock()
			failures[name] = err.Error()
			mu.Unlock()
			return nil
		})
	}

	section("version", func(ctx context.Context) (err error) {
		snap.Version, err = z.Core.Version(ctx)
		return err
	})
	section("mode", func(ctx context.Context) (err error) {
		snap.Mode, err = z.Core.Mode(ctx)
		return err
	})
	section("hosts", func(ctx context.Context) error {
		hosts, err := z.Core.Hosts(ctx)
		if err == nil && hosts != nil {
			sort.Strings(hosts)
			snap.Hosts = hosts
		}
		return err
	})
	section("contexts", func(ctx context.Context) error {
		names, err := z.Context.List(ctx)
		if err == nil {
			snap.Contexts = names
		}
		return err
	})
	section("alert_count", func(ctx context.Context) (err error) {
		snap.AlertCount, err = z.Alert.Count(ctx, zap.NewAlertFilter())
		return err
	})
	section("alerts_by_risk", func(ctx context.Context) (err error) {
		snap.AlertsByRisk, err = z.Alert.Summary(ctx, "")
		return err
	})
	section("active_scans", func(ctx context.Context) error {
		scans, err := z.Ascan.Scans(ctx)
		if err == nil && scans != nil {
			snap.ActiveScans = scans
		}
		return err
	})
	section("spider_scans", func(ctx context.Context) error {
		scans, err := z.Spider.Scans(ctx)
		if err == nil && scans != nil {
			snap.SpiderScans = scans
		}
		return err
	})
	section("ajax_spider", func(ctx context.Context) (err error) {
		snap.AjaxSpider, err = z.AjaxSpider.Status(ctx)
		return err
	})
	section("passive_queue", func(ctx context.Context) (err error) {
		c := z.Client()
		snap.PassiveQueue, err = zapapi.CallView[int](ctx, c, c.Component("pscan"), "recordsToScan", "recordsToScan", nil)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		snap.Errors = failures
	}
	snap.DurationMs = time.Since(start).Milliseconds()
	return snap, nil
}
