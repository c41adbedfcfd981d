// Package calltable describes the ZAP API as data.
//
// Every remote method is a Call: its component, kind, method name, the
// property its result is stored under, the parameters it accepts in wire
// order, and flags for calls with known upstream defects or a minimum proxy
// version. An Invoker dispatches any Call through the generic zapapi client,
// which replaces one hand-written wrapper per resource.
package calltable

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// ResultShape says how a call's response is unwrapped.
type ResultShape string

// Result shapes.
const (
	// ResultValue is a JSON value, optionally stored under ResultKey.
	ResultValue ResultShape = "value"
	// ResultLegacyList is a "[a, b, c]" string stored under ResultKey.
	ResultLegacyList ResultShape = "legacy_list"
	// ResultStatus is an action envelope {"Result": "OK"|"FAIL"}.
	ResultStatus ResultShape = "status"
	// ResultText is a raw text payload from an other call.
	ResultText ResultShape = "text"
	// ResultBinary is a raw binary payload from an other call.
	ResultBinary ResultShape = "binary"
)

// Param declares one parameter. Parameters are sent in declaration order.
type Param struct {
	Name        string `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Legacy marks a call with a known upstream defect or a replacement.
type Legacy struct {
	Note        string `json:"note" yaml:"note" jsonschema:"minLength=1"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// Call is one remote method.
type Call struct {
	Component   string          `json:"component" yaml:"component" jsonschema:"minLength=1"`
	Kind        zapapi.CallKind `json:"kind" yaml:"kind" jsonschema:"enum=view,enum=action,enum=other"`
	Method      string          `json:"method" yaml:"method" jsonschema:"minLength=1"`
	ResultKey   string          `json:"result_key,omitempty" yaml:"result_key,omitempty"`
	Result      ResultShape     `json:"result,omitempty" yaml:"result,omitempty" jsonschema:"enum=value,enum=legacy_list,enum=status,enum=text,enum=binary"`
	Params      []Param         `json:"params,omitempty" yaml:"params,omitempty"`
	RequiresKey bool            `json:"requires_key,omitempty" yaml:"requires_key,omitempty"`
	Since       string          `json:"since,omitempty" yaml:"since,omitempty"`
	Legacy      *Legacy         `json:"legacy,omitempty" yaml:"legacy,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// Name returns component/kind/method.
func (c Call) Name() string {
	return c.Component + "/" + string(c.Kind) + "/" + c.Method
}

// Param returns the declared parameter with the given name.
func (c Call) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// IsLegacy reports whether the call carries a legacy flag.
func (c Call) IsLegacy() bool {
	return c.Legacy != nil
}

// SupportedBy reports whether a proxy of the given version serves the call.
// An empty version, an empty Since, or a version that is not semver (weekly
// and dev builds) count as supported.
func (c Call) SupportedBy(version string) bool {
	if c.Since == "" || version == "" {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	cons, err := semver.NewConstraint(c.Since)
	if err != nil {
		return true
	}
	return cons.Check(v)
}

// normalize fills defaults: kind lower-cased and a result shape derived from
// the kind when none is set.
func (c Call) normalize() Call {
	c.Kind = zapapi.CallKind(strings.ToLower(string(c.Kind)))
	if c.Result == "" {
		switch {
		case c.Kind == zapapi.Other:
			c.Result = ResultText
		case c.Kind == zapapi.Action && c.ResultKey == "":
			c.Result = ResultStatus
		default:
			c.Result = ResultValue
		}
	}
	return c
}

// validate checks the combinations the schema cannot express.
func (c Call) validate() error {
	if c.Component == "" || c.Method == "" {
		return fmt.Errorf("call %q: component and method are required", c.Name())
	}
	if _, ok := zapapi.ParseCallKind(string(c.Kind)); !ok {
		return fmt.Errorf("call %q: unknown kind %q", c.Name(), c.Kind)
	}

	switch c.Result {
	case ResultText, ResultBinary:
		if c.Kind != zapapi.Other {
			return fmt.Errorf("call %q: result %q requires kind other", c.Name(), c.Result)
		}
	case ResultStatus:
		if c.Kind != zapapi.Action {
			return fmt.Errorf("call %q: result %q requires kind action", c.Name(), c.Result)
		}
	case ResultLegacyList:
		if c.Kind == zapapi.Other || c.ResultKey == "" {
			return fmt.Errorf("call %q: result %q requires a result key on a view or action", c.Name(), c.Result)
		}
	case ResultValue:
		if c.Kind == zapapi.Other {
			return fmt.Errorf("call %q: result %q is not valid for kind other", c.Name(), c.Result)
		}
	default:
		return fmt.Errorf("call %q: unknown result shape %q", c.Name(), c.Result)
	}

	seen := make(map[string]bool, len(c.Params))
	for _, p := range c.Params {
		if p.Name == "" {
			return fmt.Errorf("call %q: parameter with empty name", c.Name())
		}
		if p.Name == zapapi.APIKeyParam {
			return fmt.Errorf("call %q: %q is injected by the client and cannot be declared", c.Name(), p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("call %q: duplicate parameter %q", c.Name(), p.Name)
		}
		seen[p.Name] = true
	}

	if c.Since != "" {
		if _, err := semver.NewConstraint(c.Since); err != nil {
			return fmt.Errorf("call %q: invalid since constraint %q: %w", c.Name(), c.Since, err)
		}
	}
	return nil
}

// ArgumentSchema returns a JSON Schema for the call's arguments: an object
// whose declared properties take a scalar or null, with no other properties.
func (c Call) ArgumentSchema() map[string]any {
	props := make(map[string]any, len(c.Params))
	var required []string
	for _, p := range c.Params {
		prop := map[string]any{"type": []string{"string", "number", "boolean", "null"}}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	s := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}
