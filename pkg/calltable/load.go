package calltable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/usestring/zap-mcp/internal/schema"
)

// File is the document stored in a call table file.
type File struct {
	Calls []Call `json:"calls" yaml:"calls" jsonschema:"minItems=1"`
}

// FileSchema returns the JSON Schema of a call table file.
func FileSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{Anonymous: true}
	s := r.Reflect(&File{})
	s.Title = "ZAP call table"
	return s
}

var fileValidator = sync.OnceValues(func() (*schema.Validator, error) {
	return schema.NewValidator(FileSchema())
})

// LoadFile reads a YAML (.yaml, .yml) or JSON (.json) call table file.
func LoadFile(path string) ([]Call, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening call table: %w", err)
	}
	defer f.Close()

	calls, err := Load(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return calls, nil
}

// Load decodes a call table document. ext selects the syntax: ".json" or
// "json" for JSON, anything else for YAML (a superset of JSON). The document
// is validated against FileSchema before it is decoded into calls.
func Load(r io.Reader, ext string) ([]Call, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading call table: %w", err)
	}

	var doc any
	if strings.TrimPrefix(strings.ToLower(ext), ".") == "json" {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing call table: %w", err)
	}

	v, err := fileValidator()
	if err != nil {
		return nil, fmt.Errorf("compiling call table schema: %w", err)
	}
	if res := v.ValidateValue(doc); !res.Valid {
		return nil, fmt.Errorf("invalid call table: %w", res.Err())
	}

	// Decode through JSON so both syntaxes share the json tags.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing call table: %w", err)
	}
	var file File
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding call table: %w", err)
	}

	for i, c := range file.Calls {
		c = c.normalize()
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("calls[%d]: %w", i, err)
		}
		file.Calls[i] = c
	}
	return file.Calls, nil
}

// Extend returns a copy of base with the calls from a table file applied.
// Calls in the file replace builtin calls of the same name.
func Extend(base *Table, path string) (*Table, error) {
	calls, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	t := base.Clone()
	if err := t.Put(calls...); err != nil {
		return nil, err
	}
	return t, nil
}
