package api

import (
	"errors"
	"fmt"
)

// ErrKind classifies a failed request for the presentation layer.
// Classification happens in exactly one place (Client.send); views decide
// how to surface each kind.
type ErrKind int

const (
	// ErrKindNetwork is a transport failure (DNS, refused connection, reset).
	ErrKindNetwork ErrKind = iota
	// ErrKindTimeout is an aborted request whose deadline elapsed.
	ErrKindTimeout
	// ErrKindUnauthorized is a 401. The stored token has already been purged
	// by the time the caller sees this; navigation is the auth gate's job.
	ErrKindUnauthorized
	// ErrKindForbidden is a 403.
	ErrKindForbidden
	// ErrKindBadRequest is a 4xx validation/business rejection. Message
	// carries the server's text verbatim.
	ErrKindBadRequest
	// ErrKindServer is any 5xx.
	ErrKindServer
)

// Fixed user-facing messages for kinds where the server's own text is not
// trusted or not present.
const (
	msgAccessDenied    = "access denied"
	msgServerError     = "server error"
	msgNetworkError    = "network error"
	msgTimeout         = "request timed out"
	msgNotAuthed       = "not authenticated"
	msgRequestRejected = "request rejected"
)

// Error is a classified request failure.
type Error struct {
	Kind       ErrKind
	StatusCode int // zero for network/timeout failures
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Kind returns the classification of err, unwrapping as needed.
// The second result is false when err is not an api.Error.
func Kind(err error) (ErrKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsStatus returns true if err (or any wrapped error) is an api.Error with
// the given HTTP status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsKind returns true if err classifies as kind.
func IsKind(err error, kind ErrKind) bool {
	k, ok := Kind(err)
	return ok && k == kind
}

func (k ErrKind) String() string {
	switch k {
	case ErrKindNetwork:
		return "network"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindUnauthorized:
		return "unauthorized"
	case ErrKindForbidden:
		return "forbidden"
	case ErrKindBadRequest:
		return "bad_request"
	case ErrKindServer:
		return "server"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
