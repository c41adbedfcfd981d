package zapapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed call.
type ErrorKind int

// Error kinds.
const (
	// KindTransport means the HTTP exchange itself failed.
	KindTransport ErrorKind = iota + 1
	// KindRemoteAPI means the response carried an explicit {code, message}.
	KindRemoteAPI
	// KindEmptyResult means a required result was null, empty or missing.
	KindEmptyResult
	// KindUnknownResult means an expected property was absent or held an
	// unrecognized value.
	KindUnknownResult
	// KindActionFailed means the remote side reported Result "FAIL".
	KindActionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemoteAPI:
		return "remote api"
	case KindEmptyResult:
		return "empty result"
	case KindUnknownResult:
		return "unknown result"
	case KindActionFailed:
		return "action failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors matched by errors.Is against an *APIError of that kind.
var (
	ErrTransport     = errors.New("zapapi: transport failure")
	ErrRemoteAPI     = errors.New("zapapi: remote api error")
	ErrEmptyResult   = errors.New("zapapi: empty result")
	ErrUnknownResult = errors.New("zapapi: unknown result")
	ErrActionFailed  = errors.New("zapapi: action failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindRemoteAPI:
		return ErrRemoteAPI
	case KindEmptyResult:
		return ErrEmptyResult
	case KindUnknownResult:
		return ErrUnknownResult
	case KindActionFailed:
		return ErrActionFailed
	}
	return nil
}

// APIError is returned for every failed call.
type APIError struct {
	Kind   ErrorKind
	Code   string // remote error code, RemoteAPI only
	Detail string // remote message or a description of the violation
	Call   string // component/kind/method
	Err    error  // underlying transport or decode error, if any
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString("zap api")
	if e.Call != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Call)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	if e.Code != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Code)
		sb.WriteString("]")
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error so errors.As reaches transport errors
// unchanged.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *APIError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the ErrorKind of err, or 0 when err is not an *APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func newError(kind ErrorKind, call, detail string) *APIError {
	return &APIError{Kind: kind, Call: call, Detail: detail}
}
