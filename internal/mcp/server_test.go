package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/internal/mcp/tools"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi/zapapitest"
)

func connect(t *testing.T, cfg *config.Config) (*sdkmcp.ClientSession, *zapapitest.Transport) {
	t.Helper()
	ft := zapapitest.NewTransport()
	inv := calltable.NewInvoker(zapapitest.NewClient(ft, "secret"), nil)
	deps, err := tools.NewDeps(inv, cfg)
	require.NoError(t, err)

	srv, err := NewServer(deps, WithBuiltinTools(), WithBuiltinPrompts())
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	ss, err := srv.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs, ft
}

func testConfig() *config.Config {
	return &config.Config{ResultMaxBytes: 200000, JQCacheSize: 8, CompactMaxArrayItems: 25, CompactMaxStringLen: 2000}
}

func TestServer_ListsBuiltins(t *testing.T) {
	cs, _ := connect(t, testConfig())
	ctx := context.Background()

	toolList, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range toolList.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"zap_find_calls", "zap_describe_call", "zap_call", "zap_overview", "zap_parse_list", "zap_validate_calltable",
	}, names)

	promptList, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, promptList.Prompts, 2)
}

func TestServer_CallTool(t *testing.T) {
	cs, ft := connect(t, testConfig())
	ft.Handle("json/core/view/version", `{"version": "2.14.0"}`)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "zap_call",
		Arguments: map[string]any{"name": "core/view/version"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out tools.CallOutput
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "2.14.0", out.Result)
}

func TestServer_PerCallTools(t *testing.T) {
	cfg := testConfig()
	cfg.ExposeCallTools = true
	cs, ft := connect(t, cfg)
	ft.Handle("json/ascan/action/scan", `{"scan": "4"}`)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "zap_ascan_action_scan",
		Arguments: map[string]any{"url": "http://example.com", "recurse": true},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "http://zap/json/ascan/action/scan/?url=http%3A%2F%2Fexample.com&recurse=true&apikey=secret", ft.Last())

	res, err = cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "zap_ascan_action_scan",
		Arguments: map[string]any{"bogus": 1},
	})
	if err == nil {
		assert.True(t, res.IsError)
	}
}

func TestServer_Resources(t *testing.T) {
	cs, _ := connect(t, testConfig())
	ctx := context.Background()

	res, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "zap://call/core/view/version"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, `"locator": "http://zap/json/core/view/version/"`)

	res, err = cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "zap://calltable"})
	require.NoError(t, err)
	var file calltable.File
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &file))
	assert.Equal(t, calltable.Builtin().Len(), len(file.Calls))

	res, err = cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "zap://calltable/schema"})
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, "ZAP call table")

	_, err = cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "zap://call/core/view/nope"})
	assert.Error(t, err)
}

func TestParseCallURI(t *testing.T) {
	name, err := parseCallURI("zap://call/ascan/action/scan")
	require.NoError(t, err)
	assert.Equal(t, "ascan/action/scan", name)

	for _, uri := range []string{"zap://calltable", "zap://call/ascan/action", "zap://call/a//b", "http://call/a/b/c"} {
		_, err := parseCallURI(uri)
		assert.Error(t, err, uri)
	}
}
