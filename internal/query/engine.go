// Package query provides jq filtering of ZAP API results.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/zap-mcp/internal/cache"
)

// DefaultCacheSize is the number of compiled expressions kept by NewEngine
// when size <= 0.
const DefaultCacheSize = 128

// Engine runs jq expressions. Compiled expressions are cached; results
// never are. Safe for concurrent use.
type Engine struct {
	codes *cache.Cache[*gojq.Code]
}

// NewEngine creates an engine caching up to cacheSize compiled expressions.
func NewEngine(cacheSize int) (*Engine, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	codes, err := cache.New[*gojq.Code](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating expression cache: %w", err)
	}
	return &Engine{codes: codes}, nil
}

// Options controls a run.
type Options struct {
	Deduplicate bool // drop repeated values
	MaxResults  int  // stop after N values (0 = no limit)
}

// Result contains the values an expression produced.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"`
	RawCount  int      `json:"raw_count"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Compile parses and compiles expression, reusing a cached compilation.
func (e *Engine) Compile(expression string) (*gojq.Code, error) {
	return e.codes.GetOrCreate(expression, func() (*gojq.Code, error) {
		q, err := gojq.Parse(expression)
		if err != nil {
			var parseErr *gojq.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
			}
			return nil, fmt.Errorf("invalid jq expression: %w", err)
		}
		code, err := gojq.Compile(q)
		if err != nil {
			return nil, fmt.Errorf("compiling jq expression: %w", err)
		}
		return code, nil
	})
}

// Run evaluates expression against input, a decoded JSON value. Values that
// are not JSON trees ([]string, structs) are converted first. Runtime jq
// errors are collected per value rather than aborting the run.
func (e *Engine) Run(ctx context.Context, expression string, input any, opts Options) (*Result, error) {
	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	input, err = jsonTree(input)
	if err != nil {
		return nil, fmt.Errorf("preparing jq input: %w", err)
	}

	result := &Result{Values: make([]any, 0)}
	seen := make(map[string]bool)
	iter := code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if v == nil {
			continue
		}

		result.RawCount++
		if opts.Deduplicate {
			key := valueKey(v)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		if opts.MaxResults > 0 && len(result.Values) >= opts.MaxResults {
			result.Truncated = true
			break
		}
		result.Values = append(result.Values, v)
	}
	return result, nil
}

// Query decodes data as JSON and runs expression against it.
func (e *Engine) Query(ctx context.Context, expression string, data []byte, opts Options) (*Result, error) {
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return e.Run(ctx, expression, input, opts)
}

// Validate checks that expression compiles.
func (e *Engine) Validate(expression string) error {
	_, err := e.Compile(expression)
	return err
}

// jsonTree converts v into types gojq accepts.
func jsonTree(v any) (any, error) {
	switch v.(type) {
	case nil, bool, float64, int, string, []any, map[string]any:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// formatJQError adds hints for common runtime errors. gojq reports these as
// plain errors, so the hints are chosen by message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the result key may be missing, check zap_describe_call)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(msg, "array") && strings.Contains(msg, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return msg + hint
}

func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64, int, bool:
		return fmt.Sprintf("%T:%v", val, val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
