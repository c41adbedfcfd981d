package zap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
	"github.com/usestring/zap-mcp/pkg/zapapi/zapapitest"
)

func newTestZAP(t *testing.T) (*ZAP, *zapapitest.Transport) {
	t.Helper()
	ft := zapapitest.NewTransport()
	return New(zapapitest.NewClient(ft, "k3y")), ft
}

func TestAscan_ScanAndStatus(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/ascan/action/scan", `{"scan": "5"}`)
	ft.Handle("json/ascan/view/status", `{"status": "100"}`)

	id, err := z.Ascan.Scan(context.Background(), "http://example.com", ScanOptions{Recurse: Bool(true), ContextID: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, id)
	assert.Equal(t, "http://zap/json/ascan/action/scan/?url=http%3A%2F%2Fexample.com&recurse=true&contextId=2&apikey=k3y", ft.Last())

	pct, err := z.Ascan.Status(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 100, pct)
	assert.Equal(t, "http://zap/json/ascan/view/status/?scanId=0", ft.Last())
}

func TestAscan_Scans(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/ascan/view/scans", `{"scans": [{"id": "1", "progress": "40", "state": "RUNNING", "reqCount": "12"}]}`)

	scans, err := z.Ascan.Scans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ScanInfo{{ID: 1, Progress: 40, State: "RUNNING"}}, scans)
}

func TestAscan_StopFailed(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/ascan/action/stop", `{"Result": "FAIL"}`)

	err := z.Ascan.Stop(context.Background(), 3)
	assert.ErrorIs(t, err, zapapi.ErrActionFailed)
}

func TestContext_ListDecodesLegacyList(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/context/view/contextList", `{"contextList": "[Default Context, api]"}`)
	ft.Handle("json/context/view/includeRegexs", `{"includeRegexs": "[]"}`)

	names, err := z.Context.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Default Context", "api"}, names)

	regexes, err := z.Context.IncludeRegexs(context.Background(), "api")
	require.NoError(t, err)
	assert.Empty(t, regexes)
	assert.NotNil(t, regexes)
	assert.Equal(t, "api", ft.Query("json/context/view/includeRegexs").Get("contextName"))
}

func TestContext_NewAndGet(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/context/action/newContext", `{"contextId": "2"}`)
	ft.Handle("json/context/view/context", `{"context": {"id": "2", "name": "api", "description": "", "inScope": "true", "includedRegexs": "[]"}}`)

	id, err := z.Context.New(context.Background(), "api")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	info, err := z.Context.Get(context.Background(), "api")
	require.NoError(t, err)
	assert.Equal(t, ContextInfo{ID: 2, Name: "api", InScope: true}, info)
}

func TestCore_Views(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/core/view/version", `{"version": "2.14.0"}`)
	ft.Handle("json/core/view/hosts", `{"hosts": ["example.com", "api.example.com"]}`)
	ft.Handle("json/core/view/message", `{"message": {"id": "9", "requestHeader": "GET / HTTP/1.1", "responseBody": "ok", "rtt": "12", "timestamp": "1700000000000"}}`)

	v, err := z.Core.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.14.0", v)
	assert.NotContains(t, ft.Last(), "apikey")

	hosts, err := z.Core.Hosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "api.example.com"}, hosts)

	msg, err := z.Core.Message(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, msg.ID)
	assert.Equal(t, "GET / HTTP/1.1", msg.RequestHeader)
	assert.Equal(t, 12, msg.RTT)
	assert.Equal(t, int64(1700000000000), msg.Timestamp)
}

func TestCore_RootCert(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("other/core/other/rootcert", "-----BEGIN CERTIFICATE-----\n")

	pem, err := z.Core.RootCert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("-----BEGIN CERTIFICATE-----\n"), pem)
	assert.Equal(t, "k3y", ft.Query("other/core/other/rootcert").Get("apikey"))
}

func TestReports_HTML(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("other/core/other/htmlreport", "<html>report</html>")

	html, err := z.Reports.HTML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", html)
}

func TestReports_HTMLEmpty(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("other/core/other/htmlreport", "")

	_, err := z.Reports.HTML(context.Background())
	assert.ErrorIs(t, err, zapapi.ErrEmptyResult)
}

func TestReports_Generate(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/reports/action/generate", `{"generate": "/tmp/report.html"}`)

	path, err := z.Reports.Generate(context.Background(), GenerateOptions{
		Title:    "Weekly",
		Template: "traditional-html",
		Sites:    []string{"https://a", "https://b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report.html", path)

	q := ft.Query("json/reports/action/generate")
	assert.Equal(t, "https://a|https://b", q.Get("sites"))
	assert.False(t, q.Has("theme"))
}

func TestAlert_ListAndSummary(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/alert/view/alerts", `{"alerts": [{"id": "4", "pluginId": "10020", "name": "Missing Anti-clickjacking Header", "risk": "Medium", "cweid": "1021", "tags": {"OWASP_2021_A05": "https://owasp.org"}}]}`)
	ft.Handle("json/alert/view/alertsSummary", `{"alertsSummary": {"High": 0, "Medium": 1, "Low": 3, "Informational": 7}}`)

	f := NewAlertFilter()
	f.Risk = RiskMedium
	alerts, err := z.Alert.List(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 10020, alerts[0].PluginID)
	assert.Equal(t, 1021, alerts[0].CWEID)
	assert.Equal(t, "https://owasp.org", alerts[0].Tags["OWASP_2021_A05"])
	assert.Equal(t, "2", ft.Query("json/alert/view/alerts").Get("riskId"))

	summary, err := z.Alert.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, summary["Informational"])
}

func TestUsers_SetCredentials(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/users/action/setAuthenticationCredentials", `{"Result": "OK"}`)

	creds := zapapi.NewParams().Set("username", "alice").Set("password", "p&ss")
	require.NoError(t, z.Users.SetCredentials(context.Background(), 1, 2, creds))
	assert.Equal(t, "username=alice&password=p%26ss", ft.Query("json/users/action/setAuthenticationCredentials").Get("authCredentialsConfigParams"))
}

func TestSearch_URLsByURLRegex(t *testing.T) {
	z, ft := newTestZAP(t)
	ft.Handle("json/search/view/urlsByUrlRegex", `{"urlsByUrlRegex": [{"id": "3", "method": "GET", "url": "https://x/login", "code": "200", "rtt": "8"}]}`)

	res, err := z.Search.URLsByURLRegex(context.Background(), ".*login.*", Page{Count: 10})
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{ID: 3, Method: "GET", URL: "https://x/login", Code: 200, RTT: 8}}, res)
	assert.Equal(t, "http://zap/json/search/view/urlsByUrlRegex/?regex=.%2Alogin.%2A&count=10", ft.Last())
}

func TestWithTable_MissingCall(t *testing.T) {
	tbl, err := calltable.New()
	require.NoError(t, err)
	z := New(zapapitest.NewClient(zapapitest.NewTransport(), ""), WithTable(tbl))

	_, err = z.Core.Version(context.Background())
	assert.ErrorIs(t, err, calltable.ErrUnknownCall)
}

func TestWithTable_ResultKeyFromTable(t *testing.T) {
	tbl, err := calltable.New(calltable.Call{Component: "core", Kind: zapapi.View, Method: "version", ResultKey: "zapVersion"})
	require.NoError(t, err)
	ft := zapapitest.NewTransport().Handle("json/core/view/version", `{"zapVersion": "2.15.0"}`)
	z := New(zapapitest.NewClient(ft, ""), WithTable(tbl))

	v, err := z.Core.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.15.0", v)
}
