package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/zap-mcp/internal/mcp/tools"
	"github.com/usestring/zap-mcp/pkg/calltable"
)

// Resource URIs:
//
//	zap://calltable
//	zap://calltable/schema
//	zap://call/{component}/{kind}/{method}
const (
	uriScheme      = "zap://"
	uriCallTable   = uriScheme + "calltable"
	uriTableSchema = uriScheme + "calltable/schema"
	uriCallPrefix  = uriScheme + "call/"
)

// registerResources registers resources and resource templates.
func (s *Server) registerResources() {
	s.srv.AddResource(&sdkmcp.Resource{
		URI:         uriCallTable,
		Name:        "ZAP call table",
		Description: "Every call the server can invoke, in table file format. High context cost; zap_find_calls returns the same data filtered.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleCallTable)

	s.srv.AddResource(&sdkmcp.Resource{
		URI:         uriTableSchema,
		Name:        "Call table schema",
		Description: "JSON Schema of call table files loaded with ZAP_CALLTABLE_FILE.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant", "user"},
			Priority: 0.2,
		},
	}, s.handleTableSchema)

	s.srv.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: uriCallPrefix + "{component}/{kind}/{method}",
		Name:        "ZAP call",
		Description: "Description of one call: parameters, result shape, legacy note, argument schema. Same as zap_describe_call.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleCall)
}

func (s *Server) handleCallTable(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, calltable.File{Calls: s.deps.Invoker.Table().All()})
}

func (s *Server) handleTableSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, calltable.FileSchema())
}

func (s *Server) handleCall(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	name, err := parseCallURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	call, ok := s.deps.Invoker.Table().Lookup(name)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	return toResourceResult(req.Params.URI, tools.Describe(call, s.deps.Invoker.ProxyVersion()))
}

// parseCallURI returns the call name of a zap://call/ URI.
func parseCallURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, uriCallPrefix) {
		return "", tools.ErrInvalidInput("invalid URI: expected " + uriCallPrefix + "{component}/{kind}/{method}")
	}
	parts := strings.Split(strings.TrimPrefix(uri, uriCallPrefix), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", tools.ErrInvalidInput("call URI requires component, kind and method")
	}
	return strings.Join(parts, "/"), nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
