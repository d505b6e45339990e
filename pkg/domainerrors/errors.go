// Package domainerrors defines the typed errors services return to the
// transport layer. Codes map one-to-one onto HTTP statuses so handlers never
// inspect error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error is a domain error with a stable code and a client-safe message.
// Internal causes are carried separately and never serialized.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches an internal cause for logging while keeping the client-facing
// message clean.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on code and message so tests can assert with errors.Is against a
// freshly constructed value.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// CodeOf extracts the domain code from err, defaulting to CodeInternal for
// anything untyped.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ToHTTPStatus translates a domain code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
