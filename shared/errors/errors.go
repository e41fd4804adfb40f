package errors

import (
	"errors"
	"net/http"
)

// Failure classes returned by the backend client. Every error coming out of
// the transport wraps exactly one of them, so callers branch with errors.Is.
var (
	ErrUnauthorized   = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrServer         = errors.New("server error")
	ErrNetwork        = errors.New("network error")
	ErrUnexpected     = errors.New("unexpected error")
	ErrInvalidPayload = errors.New("invalid payload")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int   // 0 when the backend never answered
	Cause      error // one of the failure classes above, possibly joined with the transport error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Cause
}

// ClassFor maps an HTTP status onto its failure class.
func ClassFor(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnexpected
	}
}

// StatusCode returns the HTTP status carried by err, or 500 when err carries none.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
