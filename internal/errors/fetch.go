package errors

import (
	stdErrors "errors"
	"fmt"
)

// Kind classifies why a request to the movie service failed.
type Kind int

const (
	// KindOffline means the request never got a response (DNS, refused connection, timeout).
	KindOffline Kind = iota
	// KindNotFound means the service answered 404.
	KindNotFound
	// KindStatus means the service answered with another non-2xx status.
	KindStatus
	// KindMalformed means the response body could not be used.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindOffline:
		return "offline"
	case KindNotFound:
		return "not found"
	case KindStatus:
		return "unexpected status"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// FetchError describes a failed call to the movie service.
type FetchError struct {
	Kind       Kind
	Op         string // e.g. "genres", "movies", "videos"
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewOfflineError wraps a transport failure.
func NewOfflineError(op string, err error) *FetchError {
	return &FetchError{Kind: KindOffline, Op: op, Err: err}
}

// NewStatusError classifies a non-2xx response by its status code.
func NewStatusError(op string, statusCode int, body string) *FetchError {
	kind := KindStatus
	if statusCode == 404 {
		kind = KindNotFound
	}
	var err error
	if body != "" {
		err = stdErrors.New(body)
	}
	return &FetchError{Kind: kind, Op: op, StatusCode: statusCode, Err: err}
}

// NewMalformedError wraps a decoding failure or a missing required field.
func NewMalformedError(op string, err error) *FetchError {
	return &FetchError{Kind: KindMalformed, Op: op, Err: err}
}

// KindOf returns the kind of the first FetchError in err's chain.
func KindOf(err error) (Kind, bool) {
	var fetchErr *FetchError
	if stdErrors.As(err, &fetchErr) {
		return fetchErr.Kind, true
	}
	return 0, false
}

// IsOffline reports whether err is a transport failure, even when wrapped.
func IsOffline(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindOffline
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

// IsMalformed reports whether err is an unusable response body.
func IsMalformed(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindMalformed
}

// As is errors.As, re-exported so callers importing this package need not alias the standard one.
func As(err error, target any) bool {
	return stdErrors.As(err, target)
}
