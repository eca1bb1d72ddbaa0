package client

import (
	"errors"
	"fmt"
	"net/http"
)

// execFn represents a func to operate on a response.
// It reports whether it took ownership of the response body.
type execFn func(response *http.Response) (owned bool, err error)

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrTimeout is returned when no complete response arrives within the
	// request's timeout budget. It is always joined with
	// [context.DeadlineExceeded].
	ErrTimeout = errors.New("request timeout")
	// ErrWrite indicates the streamed response body could not be written
	// to its output file.
	ErrWrite = errors.New("writing output file")
	// ErrInvalidTarget indicates the request target could not be turned
	// into a URL.
	ErrInvalidTarget = errors.New("invalid request target")
)

// UnexpectedStatusError is returned by [Client.RequestStream] when the
// response status falls outside of the 2xx range. The body is never read.
type UnexpectedStatusError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: HTTP %d", e.Err, e.StatusCode)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}
