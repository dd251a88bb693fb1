// Package errors defines the coded errors shared by every eventline
// surface.
//
// Failures carry a stable machine-readable [Code] next to their human
// context, so the CLI can match on behavior and the HTTP API can map
// codes onto status codes without parsing messages. Codes use
// SCREAMING_SNAKE names grouped by category: INVALID_* for rejected
// input, *_NOT_FOUND for missing resources, NETWORK_ERROR, TIMEOUT and
// RATE_LIMITED for transport, INTERNAL_ERROR and UNSUPPORTED for the
// rest.
//
//	err := errors.New(errors.ErrCodeInvalidDateFormat,
//	    "row %d: date %q is not DD.MM.YYYY", row, raw)
//	if errors.Is(err, errors.ErrCodeInvalidDateFormat) {
//	    // Handle the bad date
//	}
//
// Wrapping keeps the cause reachable through stdlib errors.Is and
// errors.As while the code rides on top:
//
//	return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Input validation codes. Parsing and style resolution raise these with
// row or field context in the message.
const (
	ErrCodeInvalidInput          Code = "INVALID_INPUT"
	ErrCodeMissingRequiredColumn Code = "MISSING_REQUIRED_COLUMN"
	ErrCodeInvalidDateFormat     Code = "INVALID_DATE_FORMAT"
	ErrCodeInvalidDateValue      Code = "INVALID_DATE_VALUE"
	ErrCodeInvalidPlacement      Code = "INVALID_PLACEMENT"
	ErrCodeInvalidStyleValue     Code = "INVALID_STYLE_VALUE"
	ErrCodeEmptyEventSet         Code = "EMPTY_EVENT_SET"
	ErrCodeInvalidFormat         Code = "INVALID_FORMAT"
	ErrCodeInvalidPath           Code = "INVALID_PATH"
)

// Missing resource codes.
const (
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeTimelineNotFound Code = "TIMELINE_NOT_FOUND"
)

// Transport codes.
const (
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"
)

// Everything else.
const (
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a formatted message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates cause with a code and formatted message. The cause
// stays reachable through stdlib unwrapping.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether some error in err's chain carries the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// coder is implemented by error types that carry their own code, such
// as RateLimitedError.
type coder interface {
	Code() Code
}

// GetCode returns the code of the first coded error in err's chain, or
// the empty string when none carries one.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage strips the code prefix for display: coded errors yield
// their message alone, anything else its full error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError reports a 429 response together with the server's
// Retry-After hint in seconds.
type RateLimitedError struct {
	RetryAfter int
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns ErrCodeRateLimited for GetCode lookups.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
