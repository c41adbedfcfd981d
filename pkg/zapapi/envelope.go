package zapapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the parsed JSON body of a view or action response.
type Envelope struct {
	value any
}

// NewEnvelope wraps an already-decoded JSON value.
func NewEnvelope(v any) Envelope {
	return Envelope{value: v}
}

// Value returns the whole decoded body.
func (e Envelope) Value() any {
	return e.value
}

// Object returns the body as a JSON object.
func (e Envelope) Object() (map[string]any, bool) {
	obj, ok := e.value.(map[string]any)
	return obj, ok
}

// Lookup returns the property stored under key. A property holding JSON
// null is reported as absent.
func (e Envelope) Lookup(key string) (any, bool) {
	obj, ok := e.Object()
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the body is an object with key present, even if null.
func (e Envelope) Has(key string) bool {
	obj, ok := e.Object()
	if !ok {
		return false
	}
	_, ok = obj[key]
	return ok
}

// remoteError returns the RemoteAPI error carried by the body, if any.
func (e Envelope) remoteError(call string) *APIError {
	if !e.Has("code") || !e.Has("message") {
		return nil
	}
	obj, _ := e.Object()
	return &APIError{
		Kind:   KindRemoteAPI,
		Call:   call,
		Code:   scalarText(obj["code"]),
		Detail: scalarText(obj["message"]),
	}
}

type remoteFields struct {
	code, message string
}

// errorEnvelope reports whether body is a JSON object carrying both "code"
// and "message", and returns them as text.
func errorEnvelope(body []byte) (remoteFields, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return remoteFields{}, false
	}
	var obj map[string]any
	if json.Unmarshal(trimmed, &obj) != nil {
		return remoteFields{}, false
	}
	code, hasCode := obj["code"]
	message, hasMessage := obj["message"]
	if !hasCode || !hasMessage {
		return remoteFields{}, false
	}
	return remoteFields{code: scalarText(code), message: scalarText(message)}, true
}

// parseEnvelope decodes a JSON body and applies the checks common to every
// JSON call: empty/null bodies, malformed bodies and the error shape.
func parseEnvelope(call string, body []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Envelope{}, newError(KindEmptyResult, call, "response body is empty")
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return Envelope{}, &APIError{
			Kind:   KindUnknownResult,
			Call:   call,
			Detail: "response body is not valid JSON",
			Err:    err,
		}
	}

	env := Envelope{value: v}
	if apiErr := env.remoteError(call); apiErr != nil {
		return Envelope{}, apiErr
	}
	return env, nil
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return FormatScalar(x)
	default:
		return fmt.Sprint(x)
	}
}
