package download

import (
	"errors"
	"fmt"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrDownloadCancelled     = errors.New("download cancelled")
)

// MismatchError reports a completed copy whose result differs from what
// the caller expected. Err is one of the mismatch sentinels.
type MismatchError struct {
	Err      error
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %s", e.Err, e.Expected, e.Actual)
}

func (e *MismatchError) Unwrap() error {
	return e.Err
}

// ReadError is a failure of the source reader, such as a connection that
// was reset or closed before the body ended. Failures writing the temp
// file are never reported as a ReadError.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "reading source: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
