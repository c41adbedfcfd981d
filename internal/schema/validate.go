// Package schema validates decoded JSON documents against JSON Schema.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result is the outcome of a validation.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Err returns nil for a valid result, or an error listing every message.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return errors.New(strings.Join(r.Errors, "; "))
}

// Validator validates JSON values against one compiled schema. It is safe
// for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a schema. doc may be anything that marshals to a
// JSON Schema document: a map, a reflected schema struct, or json.RawMessage.
func NewValidator(doc any) (*Validator, error) {
	value, err := Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", value); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate parses data as JSON and validates it.
func (v *Validator) Validate(data []byte) Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return Result{Errors: []string{fmt.Sprintf("invalid JSON: %s", err)}}
	}
	return v.check(value)
}

// ValidateValue validates an already decoded value. Values that did not come
// from encoding/json (YAML documents, Go structs) are normalized first.
func (v *Validator) ValidateValue(value any) Result {
	normalized, err := Normalize(value)
	if err != nil {
		return Result{Errors: []string{err.Error()}}
	}
	return v.check(normalized)
}

func (v *Validator) check(value any) Result {
	if err := v.schema.Validate(value); err != nil {
		return Result{Errors: messages(err)}
	}
	return Result{Valid: true}
}

// Normalize round-trips v through encoding/json so it only contains the
// types the validator understands.
func Normalize(v any) (any, error) {
	var data []byte
	switch d := v.(type) {
	case json.RawMessage:
		data = d
	case []byte:
		data = d
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var printer = message.NewPrinter(language.English)

// messages flattens a validation error into "path: message" strings, sorted
// and de-duplicated.
func messages(err error) []string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}

	seen := make(map[string]bool)
	var out []string
	collect(verr, func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	})
	sort.Strings(out)
	if len(out) == 0 {
		out = []string{verr.Error()}
	}
	return out
}

// collect visits leaf errors, which carry the concrete failure.
func collect(err *jsonschema.ValidationError, emit func(string)) {
	if len(err.Causes) == 0 && err.ErrorKind != nil {
		msg := err.ErrorKind.LocalizedString(printer)
		if strings.HasPrefix(msg, "$ref ") || strings.HasPrefix(msg, "doesn't validate with") {
			return
		}
		path := "/" + strings.Join(err.InstanceLocation, "/")
		emit(path + ": " + msg)
		return
	}
	for _, cause := range err.Causes {
		collect(cause, emit)
	}
}
