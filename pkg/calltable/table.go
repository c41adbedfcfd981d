package calltable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Table is a set of calls indexed by name. Add is not safe for concurrent
// use; build the table before sharing it.
type Table struct {
	calls map[string]Call
}

// New builds a table from calls.
func New(calls ...Call) (*Table, error) {
	t := &Table{calls: make(map[string]Call, len(calls))}
	if err := t.Add(calls...); err != nil {
		return nil, err
	}
	return t, nil
}

// Add validates and inserts calls. Duplicate names are rejected and nothing
// is inserted when any call is invalid.
func (t *Table) Add(calls ...Call) error {
	pending := make(map[string]Call, len(calls))
	for _, c := range calls {
		c = c.normalize()
		if err := c.validate(); err != nil {
			return err
		}
		name := c.Name()
		if _, dup := t.calls[name]; dup {
			return fmt.Errorf("call %q already defined", name)
		}
		if _, dup := pending[name]; dup {
			return fmt.Errorf("call %q defined twice", name)
		}
		pending[name] = c
	}
	for name, c := range pending {
		t.calls[name] = c
	}
	return nil
}

// Put validates and inserts calls, replacing existing calls of the same
// name. Nothing is changed when any call is invalid.
func (t *Table) Put(calls ...Call) error {
	pending := make([]Call, 0, len(calls))
	for _, c := range calls {
		c = c.normalize()
		if err := c.validate(); err != nil {
			return err
		}
		pending = append(pending, c)
	}
	for _, c := range pending {
		t.calls[c.Name()] = c
	}
	return nil
}

// Lookup returns the call named component/kind/method. The kind segment is
// matched case-insensitively.
func (t *Table) Lookup(name string) (Call, bool) {
	parts := strings.Split(name, "/")
	if len(parts) != 3 {
		return Call{}, false
	}
	kind, ok := zapapi.ParseCallKind(parts[1])
	if !ok {
		return Call{}, false
	}
	return t.Find(parts[0], kind, parts[2])
}

// Find returns the call for component, kind and method.
func (t *Table) Find(component string, kind zapapi.CallKind, method string) (Call, bool) {
	c, ok := t.calls[component+"/"+string(kind)+"/"+method]
	return c, ok
}

// All returns every call sorted by name.
func (t *Table) All() []Call {
	out := make([]Call, 0, len(t.calls))
	for _, c := range t.calls {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Components returns the distinct component names, sorted.
func (t *Table) Components() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range t.calls {
		if !seen[c.Component] {
			seen[c.Component] = true
			out = append(out, c.Component)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of calls.
func (t *Table) Len() int {
	return len(t.calls)
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{calls: make(map[string]Call, len(t.calls))}
	for k, v := range t.calls {
		c.calls[k] = v
	}
	return c
}
