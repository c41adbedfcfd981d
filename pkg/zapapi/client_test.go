package zapapi

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallView_UnwrapsResultProperty(t *testing.T) {
	c, ft := newFakeClient(`{"status": 42}`)

	got, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", nil)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, "http://zap/json/ascan/view/status/", ft.last())
}

func TestCallView_StringNumbersConvert(t *testing.T) {
	c, _ := newFakeClient(`{"status": "87"}`)

	got, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", NewParams().Set("scanId", "0"))
	require.NoError(t, err)
	assert.Equal(t, 87, got)
}

func TestCallView_MissingResultProperty(t *testing.T) {
	c, _ := newFakeClient(`{"other": 42}`)

	_, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownResult)
	assert.Equal(t, KindUnknownResult, KindOf(err))
}

func TestCallView_NullResultProperty(t *testing.T) {
	c, _ := newFakeClient(`{"status": null}`)

	_, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", nil)
	assert.ErrorIs(t, err, ErrUnknownResult)
}

func TestCallView_WholeEnvelope(t *testing.T) {
	c, _ := newFakeClient(`{"hosts": ["a.example", "b.example"]}`)

	got, err := CallView[map[string]any](context.Background(), c, c.Component("core"), "hosts", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a.example", "b.example"}, got["hosts"])
}

func TestCallView_ListResult(t *testing.T) {
	c, _ := newFakeClient(`{"hosts": ["a.example", "b.example"]}`)

	got, err := CallView[[]string](context.Background(), c, c.Component("core"), "hosts", "hosts", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example", "b.example"}, got)
}

func TestCallView_StructResult(t *testing.T) {
	type alert struct {
		ID    string
		Risk  string
		Alert string
	}
	c, _ := newFakeClient(`{"alert": {"id": "7", "risk": "High", "alert": "SQL Injection"}}`)

	got, err := CallView[alert](context.Background(), c, c.Component("alert"), "alert", "alert", nil)
	require.NoError(t, err)
	assert.Equal(t, alert{ID: "7", Risk: "High", Alert: "SQL Injection"}, got)
}

func TestCallView_ConversionFailure(t *testing.T) {
	c, _ := newFakeClient(`{"status": "not a number"}`)

	_, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", nil)
	assert.ErrorIs(t, err, ErrUnknownResult)
}

func TestCallView_NeverInjectsAPIKey(t *testing.T) {
	c, ft := newFakeClient(`{"version": "2.15.0"}`)

	_, err := CallView[string](context.Background(), c, c.Component("core"), "version", "version", nil)
	require.NoError(t, err)
	assert.NotContains(t, ft.last(), "apikey")
}

func TestCallAction_ResultClassification(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "ok", body: `{"Result": "OK"}`},
		{name: "fail", body: `{"Result": "FAIL"}`, wantErr: ErrActionFailed},
		{name: "empty object", body: `{}`, wantErr: ErrUnknownResult},
		{name: "unrecognized value", body: `{"Result": "MAYBE"}`, wantErr: ErrUnknownResult},
		{name: "non-string value", body: `{"Result": 1}`, wantErr: ErrUnknownResult},
		{name: "null body", body: `null`, wantErr: ErrEmptyResult},
		{name: "empty body", body: ``, wantErr: ErrEmptyResult},
		{name: "invalid json", body: `<html>`, wantErr: ErrUnknownResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newFakeClient(tt.body)
			err := c.CallAction(context.Background(), c.Component("ascan"), "stop", NewParams().Set("scanId", "1"))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCallAction_InjectsAPIKeyLast(t *testing.T) {
	c, ft := newFakeClient(`{"Result": "OK"}`)
	params := NewParams().Set("url", "http://x").SetBool("recurse", true)

	err := c.CallAction(context.Background(), c.Component("ascan"), "scan", params)
	require.NoError(t, err)
	assert.Equal(t, "http://zap/json/ascan/action/scan/?url=http%3A%2F%2Fx&recurse=true&apikey=secret", ft.last())
	assert.False(t, params.Has(APIKeyParam), "caller params must not be modified")
}

func TestCallAction_NoKeyConfigured(t *testing.T) {
	ft := &fakeTransport{body: `{"Result": "OK"}`}
	c := New(WithTransport(ft))

	require.NoError(t, c.CallAction(context.Background(), c.Component("core"), "deleteAllAlerts", nil))
	assert.Equal(t, "http://zap/json/core/action/deleteAllAlerts/", ft.last())
}

func TestCallAction_ComponentKeyOverridesClient(t *testing.T) {
	c, ft := newFakeClient(`{"Result": "OK"}`)

	err := c.CallAction(context.Background(), NewComponent("core", "other-key"), "shutdown", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://zap/json/core/action/shutdown/?apikey=other-key", ft.last())
}

func TestCallActionResult(t *testing.T) {
	c, ft := newFakeClient(`{"scan": "3"}`)

	id, err := CallActionResult[int](context.Background(), c, c.Component("spider"), "scan", "scan", NewParams().Set("url", "http://x"))
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.Contains(t, ft.last(), "&apikey=secret")
}

func TestErrorShapeTakesPrecedence(t *testing.T) {
	body := `{"code": "bad_action", "message": "Bad Action", "Result": "OK", "status": "100"}`

	t.Run("action", func(t *testing.T) {
		c, _ := newFakeClient(body)
		err := c.CallAction(context.Background(), c.Component("core"), "shutdown", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRemoteAPI)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bad_action", apiErr.Code)
		assert.Equal(t, "Bad Action", apiErr.Detail)
	})

	t.Run("view", func(t *testing.T) {
		c, _ := newFakeClient(body)
		_, err := CallView[int](context.Background(), c, c.Component("ascan"), "status", "status", nil)
		assert.ErrorIs(t, err, ErrRemoteAPI)
	})

	t.Run("raw json", func(t *testing.T) {
		c, _ := newFakeClient(body)
		_, err := c.CallRaw(context.Background(), FormatJSON, c.Component("core"), View, "version", nil)
		assert.ErrorIs(t, err, ErrRemoteAPI)
	})
}

func TestCodeWithoutMessageIsNotAnError(t *testing.T) {
	c, _ := newFakeClient(`{"code": "x", "Result": "OK"}`)
	assert.NoError(t, c.CallAction(context.Background(), c.Component("core"), "shutdown", nil))
}

func TestTransportErrorPropagated(t *testing.T) {
	ft := &fakeTransport{err: errConnRefused}
	c := New(WithTransport(ft))

	_, err := CallView[string](context.Background(), c, c.Component("core"), "version", "version", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, errConnRefused, "original error must stay reachable")

	_, err = c.CallOther(context.Background(), c.Component("core"), "htmlreport", nil)
	assert.ErrorIs(t, err, errConnRefused)

	_, err = c.CallOtherData(context.Background(), c.Component("core"), "rootcert", nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCallOther(t *testing.T) {
	c, ft := newFakeClient("<html>report</html>")

	got, err := c.CallOther(context.Background(), c.Component("core"), "htmlreport", nil)
	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", got)
	assert.Equal(t, "http://zap/other/core/other/htmlreport/", ft.last())
}

func TestCallOther_ErrorEnvelope(t *testing.T) {
	c, ft := newFakeClient(`{"code": "no_access", "message": "Not allowed"}`)
	ft.data = []byte(ft.body)

	got, err := c.CallOther(context.Background(), c.Component("core"), "jsonreport", nil)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrRemoteAPI)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no_access", apiErr.Code)
	assert.Equal(t, "Not allowed", apiErr.Detail)

	_, err = c.CallOtherData(context.Background(), c.Component("core"), "rootcert", nil)
	assert.ErrorIs(t, err, ErrRemoteAPI)
}

func TestCallOther_JSONPayloadIsNotParsed(t *testing.T) {
	c, _ := newFakeClient(`{"site": [{"@name": "https://a.example", "alerts": []}]}`)

	got, err := c.CallOther(context.Background(), c.Component("core"), "jsonreport", nil)
	require.NoError(t, err)
	assert.Contains(t, got, `"@name"`)
}

func TestCallOther_Empty(t *testing.T) {
	c, _ := newFakeClient("")

	_, err := c.CallOther(context.Background(), c.Component("core"), "htmlreport", nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestCallOtherData(t *testing.T) {
	ft := &fakeTransport{data: []byte{0x30, 0x82}}
	c := New(WithTransport(ft))

	got, err := c.CallOtherData(context.Background(), c.Component("core"), "rootcert", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x82}, got)
	assert.Equal(t, 1, ft.dataCalls)

	ft.data = nil
	_, err = c.CallOtherData(context.Background(), c.Component("core"), "rootcert", nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestCallRaw(t *testing.T) {
	c, ft := newFakeClient(`<version>2.15.0</version>`)

	got, err := c.CallRaw(context.Background(), FormatXML, c.Component("core"), View, "version", nil)
	require.NoError(t, err)
	assert.Equal(t, `<version>2.15.0</version>`, got)
	assert.Equal(t, "http://zap/xml/core/view/version/", ft.last())

	_, err = c.CallRaw(context.Background(), FormatHTML, c.Component("core"), Action, "shutdown", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://zap/html/core/action/shutdown/?apikey=secret", ft.last())

	ft.body = "  "
	_, err = c.CallRaw(context.Background(), FormatXML, c.Component("core"), View, "version", nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, ConnectionInfo{Host: DefaultHost, Port: DefaultPort}, c.Connection())
	assert.IsType(t, &HTTPTransport{}, c.transport)

	c = New(WithConnection(ConnectionInfo{Host: "zap", Port: 8090, APIKey: "k"}))
	assert.Equal(t, Component{Name: "ascan", APIKey: "k"}, c.Component("ascan"))
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Kind: KindRemoteAPI, Call: "core/view/urls", Code: "bad_view", Detail: "Bad View"}
	assert.Equal(t, "zap api core/view/urls: remote api [bad_view]: Bad View", err.Error())

	wrapped := &APIError{Kind: KindTransport, Call: "core/view/version", Err: errConnRefused}
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.True(t, errors.Is(wrapped, ErrTransport))
	assert.False(t, errors.Is(wrapped, ErrRemoteAPI))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
}

// captureLogs routes the default logger to a buffer at debug level for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestCallAPI_LogsTransportFailure(t *testing.T) {
	logs := captureLogs(t)
	ft := &fakeTransport{err: errConnRefused}
	c := New(WithTransport(ft))

	_, err := c.CallAPI(context.Background(), c.Component("core"), View, "version", nil)
	require.ErrorIs(t, err, ErrTransport)

	out := logs.String()
	assert.Contains(t, out, "ZAP call failed")
	assert.Contains(t, out, "call=core/view/version")
	assert.Contains(t, out, "connection refused")
}
