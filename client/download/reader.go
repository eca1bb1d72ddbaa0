package download

import (
	"context"
	"io"
)

// sourceReader tags every error other than io.EOF coming from r, or from
// ctx ending, as a [ReadError].
type sourceReader struct {
	ctx context.Context
	r   io.Reader
}

func (sr *sourceReader) Read(p []byte) (int, error) {
	if err := sr.ctx.Err(); err != nil {
		return 0, &ReadError{Err: err}
	}

	n, err := sr.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &ReadError{Err: err}
	}
	return n, err
}
