// Package jsoncompact shrinks JSON results for assistant-facing output by
// trimming long arrays and strings.
package jsoncompact

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Options controls compaction. A zero field means no limit.
type Options struct {
	MaxArrayItems int `json:"max_array_items,omitempty"`
	MaxStringLen  int `json:"max_string_len,omitempty"`
	MaxDepth      int `json:"max_depth,omitempty"`
}

// Defaults, matching the documented environment defaults.
const (
	DefaultMaxArrayItems = 25
	DefaultMaxStringLen  = 2000
	DefaultMaxDepth      = 0
)

// DefaultOptions returns the default limits.
func DefaultOptions() Options {
	return Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Stats counts what compaction removed.
type Stats struct {
	TrimmedArrays    int `json:"trimmed_arrays,omitempty"`
	DroppedItems     int `json:"dropped_items,omitempty"`
	TruncatedStrings int `json:"truncated_strings,omitempty"`
	DepthCuts        int `json:"depth_cuts,omitempty"`
}

// Changed reports whether anything was removed.
func (s Stats) Changed() bool {
	return s != Stats{}
}

// ErrTooLarge is returned by Fit when the value cannot be brought under the
// byte budget.
var ErrTooLarge = errors.New("result too large")

// Compact compacts JSON bytes. Empty input is returned unchanged.
func Compact(data []byte, opts Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	out, _ := Value(v, opts)
	return json.Marshal(out)
}

// Value compacts any JSON-marshalable value and reports what was removed.
func Value(v any, opts Options) (any, Stats) {
	var st Stats
	c := compactor{opts: opts, stats: &st}
	return c.walk(tree(v), 0), st
}

// Fit compacts v with opts, then halves the array and string limits until the
// encoding fits in maxBytes. maxBytes <= 0 disables the budget.
func Fit(v any, opts Options, maxBytes int) ([]byte, Stats, error) {
	v = tree(v)
	for {
		out, st := Value(v, opts)
		data, err := json.Marshal(out)
		if err != nil {
			return nil, st, fmt.Errorf("encoding result: %w", err)
		}
		if maxBytes <= 0 || len(data) <= maxBytes {
			return data, st, nil
		}
		next, ok := tighten(opts)
		if !ok {
			return nil, st, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(data), maxBytes)
		}
		opts = next
	}
}

func tighten(o Options) (Options, bool) {
	switch {
	case o.MaxArrayItems == 0:
		o.MaxArrayItems = DefaultMaxArrayItems
	case o.MaxArrayItems > 1:
		o.MaxArrayItems /= 2
	case o.MaxStringLen == 0:
		o.MaxStringLen = DefaultMaxStringLen
	case o.MaxStringLen > 16:
		o.MaxStringLen /= 2
	default:
		return o, false
	}
	return o, true
}

// tree converts v into the types produced by encoding/json.
func tree(v any) any {
	switch v.(type) {
	case nil, bool, float64, string, json.Number, []any, map[string]any:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

type compactor struct {
	opts  Options
	stats *Stats
}

func (c compactor) walk(v any, depth int) any {
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		switch v.(type) {
		case []any, map[string]any:
			c.stats.DepthCuts++
			return "[max depth]"
		}
	}

	switch val := v.(type) {
	case []any:
		return c.array(val, depth)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = c.walk(item, depth+1)
		}
		return out
	case string:
		return c.str(val)
	default:
		return v
	}
}

func (c compactor) array(arr []any, depth int) []any {
	n := len(arr)
	if c.opts.MaxArrayItems > 0 && n > c.opts.MaxArrayItems {
		n = c.opts.MaxArrayItems
	}
	out := make([]any, 0, n+1)
	for _, item := range arr[:n] {
		out = append(out, c.walk(item, depth+1))
	}
	if dropped := len(arr) - n; dropped > 0 {
		c.stats.TrimmedArrays++
		c.stats.DroppedItems += dropped
		out = append(out, fmt.Sprintf("... (%d more items)", dropped))
	}
	return out
}

// str truncates on a rune boundary.
func (c compactor) str(s string) string {
	if c.opts.MaxStringLen <= 0 || len(s) <= c.opts.MaxStringLen {
		return s
	}
	cut := c.opts.MaxStringLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	c.stats.TruncatedStrings++
	return s[:cut] + fmt.Sprintf("... (%d more bytes)", len(s)-cut)
}
