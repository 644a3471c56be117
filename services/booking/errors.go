package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking operations. Every guard failure maps to one of
// these stable machine-readable kinds.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeSchedulingConflict     = "SCHEDULING_CONFLICT"
	CodeOutOfServiceArea       = "OUT_OF_SERVICE_AREA"
	CodeRateLimited            = "RATE_LIMITED"
	CodeInvalidOTP             = "INVALID_OTP"
	CodeOTPExpired             = "OTP_EXPIRED"
	CodeAttemptsExceeded       = "ATTEMPTS_EXCEEDED"
	CodeValidation             = "VALIDATION_ERROR"
	CodeInternal               = "INTERNAL"
)

// Error is a coded service error surfaced at the operation boundary.
// Internal storage detail never leaks through it.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...any) *Error {
	return newError(CodeNotFound, format, args...)
}

func ErrUnauthorized(format string, args ...any) *Error {
	return newError(CodeUnauthorized, format, args...)
}

func ErrInvalidStateTransition(format string, args ...any) *Error {
	return newError(CodeInvalidStateTransition, format, args...)
}

func ErrSchedulingConflict(format string, args ...any) *Error {
	return newError(CodeSchedulingConflict, format, args...)
}

func ErrOutOfServiceArea(format string, args ...any) *Error {
	return newError(CodeOutOfServiceArea, format, args...)
}

func ErrRateLimited(format string, args ...any) *Error {
	return newError(CodeRateLimited, format, args...)
}

func ErrInvalidOTP(format string, args ...any) *Error {
	return newError(CodeInvalidOTP, format, args...)
}

func ErrOTPExpired(format string, args ...any) *Error {
	return newError(CodeOTPExpired, format, args...)
}

func ErrAttemptsExceeded(format string, args ...any) *Error {
	return newError(CodeAttemptsExceeded, format, args...)
}

func ErrValidation(format string, args ...any) *Error {
	return newError(CodeValidation, format, args...)
}

// ErrInternal hides storage and infrastructure failures behind a generic
// outcome; the underlying error is logged at the call site.
func ErrInternal() *Error {
	return &Error{Code: CodeInternal, Message: "an unexpected error occurred"}
}

func errInternal(err error) *Error {
	return ErrInternal()
}

// CodeOf returns the error code if err is a service Error, or CodeInternal.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
