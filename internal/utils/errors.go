package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Code is the closed set of error kinds surfaced to HTTP clients.
// Handlers map codes to statuses through HTTPStatus; message text is
// never inspected for control flow.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeTimeout         Code = "TIMEOUT"
	CodeInternal        Code = "INTERNAL"
)

var codeStatus = map[Code]int{
	CodeInvalidArgument: http.StatusBadRequest,
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeTimeout:         http.StatusGatewayTimeout,
	CodeInternal:        http.StatusInternalServerError,
}

// AppError is the error contract shared by services, middleware and
// handlers.  Message is safe to show to clients; Err is the wrapped
// cause and is only logged.
type AppError struct {
	Code    Code
	Op      string // operation name, ex: "JobService.Update"
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error { return e.Err }

// E builds an AppError.
func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

func InvalidInput(op, msg string) error    { return E(CodeInvalidArgument, op, msg, nil) }
func Unauthenticated(op, msg string) error { return E(CodeUnauthenticated, op, msg, nil) }
func Forbidden(op, msg string) error       { return E(CodeForbidden, op, msg, nil) }
func NotFound(op, msg string) error        { return E(CodeNotFound, op, msg, nil) }
func Conflict(op, msg string) error        { return E(CodeConflict, op, msg, nil) }

// Internal wraps an unexpected store failure.  A cause that is a
// context deadline becomes a Timeout so the client sees 504 instead
// of a generic 500.
func Internal(op, msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return E(CodeTimeout, op, "request timed out", err)
	}
	return E(CodeInternal, op, msg, err)
}

// CodeOf returns the code carried by err, or CodeInternal for errors
// that are not AppErrors.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeInternal
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps err to its HTTP status code.
func HTTPStatus(err error) int {
	if s, ok := codeStatus[CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-safe text for err.  Causes of
// internal errors are never exposed.
func PublicMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return http.StatusText(HTTPStatus(err))
}
