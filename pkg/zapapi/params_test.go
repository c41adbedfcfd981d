package zapapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_SetKeepsPosition(t *testing.T) {
	p := NewParams().Set("a", "1").Set("b", "2").Set("a", "3")
	assert.Equal(t, "a=3&b=2", p.Encode())
}

func TestParams_OmitEmptyNullAreDistinct(t *testing.T) {
	p := NewParams().Set("empty", "").SetNull("null")

	_, ok := p.Get("absent")
	assert.False(t, ok)

	empty, ok := p.Get("empty")
	assert.True(t, ok)
	assert.False(t, empty.Null)
	assert.Equal(t, "", empty.Value)

	null, ok := p.Get("null")
	assert.True(t, ok)
	assert.True(t, null.Null)

	assert.Equal(t, "empty=&null=", p.Encode())
}

func TestParams_SetIf(t *testing.T) {
	p := NewParams().SetIf("a", "").SetIf("b", "x")
	assert.False(t, p.Has("a"))
	assert.True(t, p.Has("b"))
}

func TestParams_NilIsEmpty(t *testing.T) {
	var p *Params
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, "", p.Encode())
	assert.Nil(t, p.All())
	assert.False(t, p.Has("x"))
	assert.Equal(t, 0, p.Clone().Len())
}

func TestParams_CloneIsIndependent(t *testing.T) {
	p := NewParams().Set("a", "1")
	c := p.Clone().Set("b", "2")
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, c.Len())
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint64(9), "9"},
		{1.5, "1.5"},
		{float64(3), "3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatScalar(tt.in))
	}
}
