package epollo

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These codes describe the kind of failure independently of the failing
// subsystem, so callers can branch on ErrorCode without inspecting
// implementation details.
const (
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	EINTERNAL    = "internal"    // internal error
	EUNAVAILABLE = "unavailable" // external service unreachable
	ETIMEOUT     = "timeout"     // operation exceeded its deadline
	ETOOLARGE    = "too_large"   // payload exceeds the configured size cap
	EHTTP        = "http_error"  // upstream returned an HTTP error status
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("epollo error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code, if it is an application
// error. Non-application errors map to EINTERNAL; nil maps to "".
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, if it is an
// application error. Non-application errors map to a generic message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
