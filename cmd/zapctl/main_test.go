package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
	"github.com/usestring/zap-mcp/pkg/zapapi/zapapitest"
)

func run(t *testing.T, ft *zapapitest.Transport, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ZAP_VERSION", "")
	t.Setenv("ZAP_CALLTABLE_FILE", "")
	t.Setenv("LOG_FILE", "")

	var out bytes.Buffer
	cmd := newRootCmd(&out, zapapi.WithTransport(ft))
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--api-key", "secret", "-o", "json"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs([]string{"url=https://a.example/?q=1", "recurse=true", "contextName="}, []string{"scanPolicyName"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"url":            "https://a.example/?q=1",
		"recurse":        "true",
		"contextName":    "",
		"scanPolicyName": nil,
	}, args)

	_, err = parseArgs([]string{"novalue"}, nil)
	assert.ErrorContains(t, err, "not name=value")

	_, err = parseArgs([]string{"=x"}, nil)
	assert.Error(t, err)

	_, err = parseArgs([]string{"a=1", "a=2"}, nil)
	assert.ErrorContains(t, err, "given twice")

	_, err = parseArgs([]string{"a=1"}, []string{"a"})
	assert.ErrorContains(t, err, "given twice")
}

func TestCall_JSON(t *testing.T) {
	ft := zapapitest.NewTransport().Handle("json/core/view/hosts", `{"hosts": ["a.example", "b.example"]}`)

	out, err := run(t, ft, "call", "core/view/hosts")
	require.NoError(t, err)

	var hosts []string
	require.NoError(t, json.Unmarshal([]byte(out), &hosts))
	assert.Equal(t, []string{"a.example", "b.example"}, hosts)
}

func TestCall_ArgsAndJQ(t *testing.T) {
	ft := zapapitest.NewTransport().
		Handle("json/core/view/alerts", `{"alerts": [{"alert": "XSS", "risk": "High"}, {"alert": "CSP", "risk": "Low"}]}`)

	out, err := run(t, ft, "call", "core/view/alerts", "baseurl=https://a.example", "--jq", ".[].alert")
	require.NoError(t, err)

	assert.JSONEq(t, `["XSS", "CSP"]`, out)
	assert.Equal(t, "https://a.example", ft.Query("json/core/view/alerts").Get("baseurl"))
}

func TestCall_ActionSendsKey(t *testing.T) {
	ft := zapapitest.NewTransport().Handle("json/ascan/action/scan", `{"scan": "3"}`)

	out, err := run(t, ft, "call", "ascan/action/scan", "url=https://a.example", "recurse=true")
	require.NoError(t, err)

	assert.Contains(t, out, "3")
	q := ft.Query("json/ascan/action/scan")
	assert.Equal(t, "secret", q.Get("apikey"))
	assert.Equal(t, "true", q.Get("recurse"))
}

func TestCall_Errors(t *testing.T) {
	ft := zapapitest.NewTransport()

	_, err := run(t, ft, "call", "core/view/nope")
	assert.ErrorIs(t, err, calltable.ErrUnknownCall)

	_, err = run(t, ft, "call", "ascan/action/stop")
	assert.ErrorIs(t, err, calltable.ErrInvalidArgument)

	_, err = run(t, ft, "call", "core/view/hosts", "--attr", "href")
	assert.ErrorContains(t, err, "--attr requires --css")

	_, err = run(t, ft, "call", "core/view/hosts", "--format", "xml", "--jq", ".")
	assert.ErrorContains(t, err, "json rendering only")

	_, err = run(t, ft, "call", "core/other/rootcert", "--format", "html")
	assert.ErrorContains(t, err, "binary")
}

func TestCall_XPath(t *testing.T) {
	ft := zapapitest.NewTransport().
		Handle("xml/core/view/hosts", `<hosts type="list"><host>a.example</host><host>b.example</host></hosts>`)

	out, err := run(t, ft, "call", "core/view/hosts", "--xpath", "//host")
	require.NoError(t, err)
	assert.JSONEq(t, `["a.example", "b.example"]`, out)
}

func TestCall_TextAndBinaryOut(t *testing.T) {
	ft := zapapitest.NewTransport().
		Handle("other/core/other/proxy.pac", "function FindProxyForURL(url, host) {}").
		Handle("other/core/other/rootcert", "CERTBYTES")

	dir := t.TempDir()
	pac := filepath.Join(dir, "proxy.pac")
	_, err := run(t, ft, "call", "core/other/proxy.pac", "--out", pac)
	require.NoError(t, err)
	data, err := os.ReadFile(pac)
	require.NoError(t, err)
	assert.Equal(t, "function FindProxyForURL(url, host) {}", string(data))

	_, err = run(t, ft, "call", "core/other/rootcert")
	assert.ErrorContains(t, err, "--out")

	cert := filepath.Join(dir, "root.cer")
	_, err = run(t, ft, "call", "core/other/rootcert", "--out", cert)
	require.NoError(t, err)
	data, err = os.ReadFile(cert)
	require.NoError(t, err)
	assert.Equal(t, "CERTBYTES", string(data))
}

func TestCalls(t *testing.T) {
	ft := zapapitest.NewTransport()

	out, err := run(t, ft, "calls", "list", "--component", "ascan", "--kind", "action")
	require.NoError(t, err)
	var rows []callRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.True(t, strings.HasPrefix(r.Name, "ascan/action/"), r.Name)
	}

	out, err = run(t, ft, "calls", "describe", "ascan/action/stop")
	require.NoError(t, err)
	assert.Contains(t, out, "scanId")

	_, err = run(t, ft, "calls", "list", "--kind", "bogus")
	assert.ErrorContains(t, err, "--kind")

	_, err = run(t, ft, "calls", "describe", "core/view/nope")
	assert.ErrorIs(t, err, calltable.ErrUnknownCall)
}

func TestParseListCmd(t *testing.T) {
	out, err := run(t, zapapitest.NewTransport(), "parse-list", "[a, b, c]")
	require.NoError(t, err)
	assert.JSONEq(t, `["a", "b", "c"]`, out)
}

func TestRowFor(t *testing.T) {
	call, ok := calltable.Builtin().Lookup("core/action/accessUrl")
	require.True(t, ok)
	row := rowFor(call)
	assert.Equal(t, "core/action/accessUrl", row.Name)
	assert.Equal(t, "url* followRedirects", row.Params)
	assert.False(t, row.Legacy)
}
