package entity

import (
	"errors"
	"net/http"
)

// ErrorCode is the machine readable error class returned to callers.
type ErrorCode string

const (
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeRateLimit  ErrorCode = "RATE_LIMIT"
	CodeUpstream   ErrorCode = "UPSTREAM"
	CodeParseError ErrorCode = "PARSE_ERROR"
)

// HTTPStatus maps an error code onto its response status.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Standard domain errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUpstream          = errors.New("upstream generation failed")
	ErrUnparseable       = errors.New("could not extract valid JSON from response")
	ErrMissingItems      = errors.New("invalid response structure: missing items array")
	ErrEmptyResponse     = errors.New("upstream returned an empty response")
	ErrMissingCredential = errors.New("no upstream credential configured")
)

// Error carries a safe, caller facing message and a code. The wrapped cause
// is for logs only and never leaves the process.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func NewError(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, cause: cause}
}

func BadRequest(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}
