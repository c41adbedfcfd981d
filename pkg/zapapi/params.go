package zapapi

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is a single query parameter. Null is reported separately from an
// empty Value so callers can tell "sent as null" from "sent empty"; both
// serialize as "key=".
type Param struct {
	Key   string
	Value string
	Null  bool
}

// Params is an ordered set of query parameters. A key that was never set is
// omitted from the request. The zero value and a nil *Params are empty.
type Params struct {
	items []Param
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Set sets key to value. An existing key keeps its position.
func (p *Params) Set(key, value string) *Params {
	return p.put(Param{Key: key, Value: value})
}

// SetNull sets key to null. It serializes as an empty value.
func (p *Params) SetNull(key string) *Params {
	return p.put(Param{Key: key, Null: true})
}

// SetBool sets key to "true" or "false".
func (p *Params) SetBool(key string, v bool) *Params {
	return p.Set(key, strconv.FormatBool(v))
}

// SetInt sets key to the decimal form of v.
func (p *Params) SetInt(key string, v int) *Params {
	return p.Set(key, strconv.Itoa(v))
}

// SetValue sets key from a scalar. nil becomes null; strings, booleans and
// numbers use their canonical text form.
func (p *Params) SetValue(key string, v any) *Params {
	if v == nil {
		return p.SetNull(key)
	}
	return p.Set(key, FormatScalar(v))
}

// SetIf sets key only when value is non-empty.
func (p *Params) SetIf(key, value string) *Params {
	if value == "" {
		return p
	}
	return p.Set(key, value)
}

func (p *Params) put(param Param) *Params {
	for i := range p.items {
		if p.items[i].Key == param.Key {
			p.items[i] = param
			return p
		}
	}
	p.items = append(p.items, param)
	return p
}

// Get returns the parameter stored under key.
func (p *Params) Get(key string) (Param, bool) {
	if p == nil {
		return Param{}, false
	}
	for _, item := range p.items {
		if item.Key == key {
			return item, true
		}
	}
	return Param{}, false
}

// Has reports whether key was set.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// All returns a copy of the parameters in insertion order.
func (p *Params) All() []Param {
	if p == nil {
		return nil
	}
	out := make([]Param, len(p.items))
	copy(out, p.items)
	return out
}

// Clone returns an independent copy. Cloning nil yields an empty set.
func (p *Params) Clone() *Params {
	return &Params{items: p.All()}
}

// Encode serializes the parameters as k1=v1&k2=v2 in insertion order with
// keys and values percent-encoded by EncodeComponent.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, item := range p.items {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(EncodeComponent(item.Key))
		sb.WriteByte('=')
		if !item.Null {
			sb.WriteString(EncodeComponent(item.Value))
		}
	}
	return sb.String()
}

// FormatScalar renders a scalar parameter value. Floats use the shortest
// representation that round-trips.
func FormatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
