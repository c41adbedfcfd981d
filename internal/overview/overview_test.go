package overview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/zap-mcp/pkg/zap"
	"github.com/usestring/zap-mcp/pkg/zapapi"
	"github.com/usestring/zap-mcp/pkg/zapapi/zapapitest"
)

func healthyTransport() *zapapitest.Transport {
	return zapapitest.NewTransport().
		Handle("json/core/view/version", `{"version": "2.14.0"}`).
		Handle("json/core/view/mode", `{"mode": "standard"}`).
		Handle("json/core/view/hosts", `{"hosts": ["b.example", "a.example"]}`).
		Handle("json/context/view/contextList", `{"contextList": "[Default Context]"}`).
		Handle("json/alert/view/numberOfAlerts", `{"numberOfAlerts": "7"}`).
		Handle("json/alert/view/alertsSummary", `{"alertsSummary": {"High": 1, "Medium": 2, "Low": 4, "Informational": 0}}`).
		Handle("json/ascan/view/scans", `{"scans": [{"id": "0", "progress": "100", "state": "FINISHED"}]}`).
		Handle("json/spider/view/scans", `{"scans": []}`).
		Handle("json/ajaxSpider/view/status", `{"status": "stopped"}`).
		Handle("json/pscan/view/recordsToScan", `{"recordsToScan": "3"}`)
}

func TestCollect(t *testing.T) {
	ft := healthyTransport()
	z := zap.New(zapapitest.NewClient(ft, ""))

	snap, err := Collect(context.Background(), z, WithConcurrency(2))
	require.NoError(t, err)

	assert.Equal(t, "2.14.0", snap.Version)
	assert.Equal(t, "standard", snap.Mode)
	assert.Equal(t, []string{"a.example", "b.example"}, snap.Hosts)
	assert.Equal(t, []string{"Default Context"}, snap.Contexts)
	assert.Equal(t, 7, snap.AlertCount)
	assert.Equal(t, 4, snap.AlertsByRisk["Low"])
	assert.Equal(t, []zap.ScanInfo{{ID: 0, Progress: 100, State: "FINISHED"}}, snap.ActiveScans)
	assert.Empty(t, snap.SpiderScans)
	assert.NotNil(t, snap.SpiderScans)
	assert.Equal(t, "stopped", snap.AjaxSpider)
	assert.Equal(t, 3, snap.PassiveQueue)
	assert.Nil(t, snap.Errors)
	assert.Len(t, ft.Requests(), 10)
}

func TestCollect_RecordsSectionErrors(t *testing.T) {
	ft := healthyTransport().
		Handle("json/alert/view/alertsSummary", `{"code": "bad_view", "message": "No Implementor"}`).
		Handle("json/ajaxSpider/view/status", `null`)
	z := zap.New(zapapitest.NewClient(ft, ""))

	snap, err := Collect(context.Background(), z)
	require.NoError(t, err)

	assert.Equal(t, "2.14.0", snap.Version)
	assert.Nil(t, snap.AlertsByRisk)
	assert.Empty(t, snap.AjaxSpider)
	require.Len(t, snap.Errors, 2)
	assert.Contains(t, snap.Errors["alerts_by_risk"], "No Implementor")
	assert.Contains(t, snap.Errors, "ajax_spider")
}

func TestCollect_TransportErrorAborts(t *testing.T) {
	ft := healthyTransport().Fail("json/core/view/version", errors.New("connection refused"))
	z := zap.New(zapapitest.NewClient(ft, ""))

	snap, err := Collect(context.Background(), z)
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, zapapi.KindTransport, zapapi.KindOf(err))
}
