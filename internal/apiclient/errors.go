package apiclient

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies why a backend call failed.
type Kind string

const (
	// KindResponse means the backend answered with a non-2xx status
	// (or a 2xx body that is not an envelope).
	KindResponse Kind = "response"
	// KindNoResponse means the request went out but nothing came back.
	KindNoResponse Kind = "no_response"
	// KindDispatch means the request could not be built or sent at all.
	KindDispatch Kind = "dispatch"
)

// Display messages shown to console users.
const (
	MsgFallback   = "Có lỗi xảy ra"
	MsgNoResponse = "Không thể kết nối đến server"
)

// Error is the normalized failure of a backend call. Error() returns only the
// display message; Kind and Status stay available for callers that branch on cause.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, only for KindResponse
	Message string
	err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsKind reports whether err is a normalized client error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// responseError builds the error for a backend that answered with a failure status.
// The message comes from the body's "message" field, then "error", then the fallback.
func responseError(status int, body map[string]any, cause error) *Error {
	msg := MsgFallback
	if s, ok := body["message"].(string); ok && s != "" {
		msg = s
	} else if s, ok := body["error"].(string); ok && s != "" {
		msg = s
	}
	if cause == nil {
		cause = errors.Newf("backend returned status %d", status)
	}
	return &Error{Kind: KindResponse, Status: status, Message: msg, err: cause}
}

func noResponseError(cause error) *Error {
	return &Error{Kind: KindNoResponse, Message: MsgNoResponse, err: errors.Wrap(cause, "no response from backend")}
}

func dispatchError(cause error) *Error {
	msg := MsgFallback
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{Kind: KindDispatch, Message: msg, err: errors.Wrap(cause, "dispatch request")}
}
