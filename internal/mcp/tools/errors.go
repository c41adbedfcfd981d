package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Error codes for MCP tool responses.
const (
	ErrCodeTransport     = "ZAP_TRANSPORT"
	ErrCodeRemote        = "ZAP_REMOTE_ERROR"
	ErrCodeEmptyResult   = "ZAP_EMPTY_RESULT"
	ErrCodeUnknownResult = "ZAP_UNKNOWN_RESULT"
	ErrCodeActionFailed  = "ZAP_ACTION_FAILED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeTimeout       = "TIMEOUT"
	// ErrCodeInternal is a failure inside the server, e.g. encoding a
	// result, that never reached the proxy.
	ErrCodeInternal = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapZAPError converts an error from the ZAP client or the call table to a
// coded error. Coded errors pass through unchanged. Errors that are neither
// come from the server itself and are coded INTERNAL.
func WrapZAPError(err error) error {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}
	coded = classify(err)

	slog.Warn("ZAP API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

func classify(err error) *CodedError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, calltable.ErrUnknownCall):
		return &CodedError{Code: ErrCodeNotFound, Message: "unknown call", Cause: err}
	case errors.Is(err, calltable.ErrInvalidArgument),
		errors.Is(err, calltable.ErrUnsupported),
		errors.Is(err, calltable.ErrLegacy):
		return &CodedError{Code: ErrCodeInvalidInput, Message: "call rejected", Cause: err}
	}

	var apiErr *zapapi.APIError
	if !errors.As(err, &apiErr) {
		return &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
	}
	switch apiErr.Kind {
	case zapapi.KindRemoteAPI:
		return &CodedError{Code: ErrCodeRemote, Message: apiErr.Detail, Cause: err}
	case zapapi.KindEmptyResult:
		return &CodedError{Code: ErrCodeEmptyResult, Message: "proxy returned no result", Cause: err}
	case zapapi.KindUnknownResult:
		return &CodedError{Code: ErrCodeUnknownResult, Message: "unexpected result shape", Cause: err}
	case zapapi.KindActionFailed:
		return &CodedError{Code: ErrCodeActionFailed, Message: "proxy reported FAIL", Cause: err}
	default:
		return &CodedError{Code: ErrCodeTransport, Message: "proxy unreachable", Cause: err}
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
