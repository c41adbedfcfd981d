package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/zap-mcp/internal/overview"
)

func TestCheckOutputSchema_Rejects(t *testing.T) {
	type nilSlice struct {
		Items []string `json:"items"`
	}
	type nilMap struct {
		Counts map[string]int `json:"counts"`
	}
	type raw struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type rawSlice struct {
		Items []json.RawMessage `json:"items,omitzero"`
	}
	type nested struct {
		Inner struct {
			Schema json.RawMessage `json:"schema,omitempty"`
		} `json:"inner"`
	}

	tests := []struct {
		name  string
		check func()
	}{
		{"nil slice", func() { CheckOutputSchema[nilSlice]("t") }},
		{"nil map", func() { CheckOutputSchema[nilMap]("t") }},
		{"raw message", func() { CheckOutputSchema[raw]("t") }},
		{"raw message slice", func() { CheckOutputSchema[rawSlice]("t") }},
		{"nested raw message", func() { CheckOutputSchema[nested]("t") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.check)
		})
	}
}

func TestCheckOutputSchema_Accepts(t *testing.T) {
	type omitzero struct {
		Items []string `json:"items,omitzero"`
	}
	type omitempty struct {
		Items []any `json:"items,omitempty"`
	}
	type pointerSlice struct {
		Items *[]string `json:"items"`
	}

	tests := []struct {
		name  string
		check func()
	}{
		{"omitzero", func() { CheckOutputSchema[omitzero]("t") }},
		{"omitempty", func() { CheckOutputSchema[omitempty]("t") }},
		{"pointer slice", func() { CheckOutputSchema[pointerSlice]("t") }},
		{"any", func() { CheckOutputSchema[any]("t") }},
		{"find calls", func() { CheckOutputSchema[FindCallsOutput]("zap_find_calls") }},
		{"describe call", func() { CheckOutputSchema[DescribeCallOutput]("zap_describe_call") }},
		{"call", func() { CheckOutputSchema[CallOutput]("zap_call") }},
		{"overview", func() { CheckOutputSchema[*overview.Snapshot]("zap_overview") }},
		{"parse list", func() { CheckOutputSchema[ParseListOutput]("zap_parse_list") }},
		{"validate table", func() { CheckOutputSchema[ValidateTableOutput]("zap_validate_calltable") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, tt.check)
		})
	}
}
