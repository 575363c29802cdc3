// Package errors gives the roadmap engine's outer surfaces (CLI, HTTP, file
// import, configuration) coded errors.
//
// The engine stages themselves never fail: malformed payloads, duplicate ids,
// cycles and orphans degrade to diagnostics. Errors only arise at the edges,
// where a [Code] tells callers what went wrong without parsing messages.
//
// Codes follow a naming convention: INVALID_* for rejected input, *NOT_FOUND
// for missing resources, and INTERNAL_ERROR or UNSUPPORTED otherwise.
//
//	err := errors.New(errors.ErrCodeInvalidRecord, "node id %q is empty", id)
//	if errors.Is(err, errors.ErrCodeInvalidRecord) { ... }
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read payload %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPayload Code = "INVALID_PAYLOAD"
	ErrCodeInvalidRecord  Code = "INVALID_RECORD"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// IsInvalid reports whether c belongs to the INVALID_* family.
func (c Code) IsInvalid() bool { return strings.HasPrefix(string(c), "INVALID_") }

// HTTPStatus maps c to a response status. Configuration problems are the
// server's fault, so INVALID_CONFIG is a 500.
func (c Code) HTTPStatus() int {
	switch {
	case c == ErrCodeInvalidConfig:
		return http.StatusInternalServerError
	case c.IsInvalid():
		return http.StatusBadRequest
	case c == ErrCodeNotFound || c == ErrCodeFileNotFound:
		return http.StatusNotFound
	case c == ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "" if none.
func GetCode(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix and cause.
// Uncoded errors are returned as-is.
func UserMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}
