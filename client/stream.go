package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adamwoolhether/httpreq/client/download"
)

// StreamResult is the outcome of [Client.RequestStream]. Exactly one of
// the two shapes is set: Success and Path after the body was written to
// Options.OutputFile, or Response when no output file was requested.
type StreamResult struct {
	Success bool
	Path    string

	// Response carries the unread body. The caller must close it; the
	// call's timeout budget keeps running until then.
	Response *http.Response
}

// RequestStream fires the call without buffering the response. A status
// outside of [200, 300) fails with an [*UnexpectedStatusError] before any
// body byte is read. With Options.OutputFile set, the body is written to
// that path, which only appears once every byte is on disk; otherwise the
// live response is returned. Options.Body is not sent.
func (c *Client) RequestStream(ctx context.Context, target Target, opts Options) (*StreamResult, error) {
	cl, err := c.prepare(target, opts, false)
	if err != nil {
		return nil, err
	}

	var result StreamResult
	relayFn := func(resp *http.Response) (bool, error) {
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return false, &UnexpectedStatusError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Err:        ErrUnexpectedStatusCode,
			}
		}

		if cl.opts.OutputFile == "" {
			result.Response = resp
			return true, nil
		}

		if err := c.writeFile(resp.Request.Context(), resp, cl); err != nil {
			return false, err
		}

		result = StreamResult{Success: true, Path: cl.opts.OutputFile}

		return false, nil
	}

	if err := c.exec(ctx, cl, relayFn); err != nil {
		return nil, err
	}

	return &result, nil
}

// writeFile stores the body at Options.OutputFile. A body that breaks off
// mid-stream is a transport failure and its error is returned as is; only
// failures on the file side are reported as [ErrWrite].
func (c *Client) writeFile(ctx context.Context, resp *http.Response, cl *call) error {
	n, err := download.ToFile(ctx, resp.Body, resp.ContentLength, cl.opts.OutputFile, c.logger, cl.opts.Download...)
	if err != nil {
		var readErr *download.ReadError
		if errors.As(err, &readErr) {
			return readErr.Err
		}
		return fmt.Errorf("%w %s: %w", ErrWrite, cl.opts.OutputFile, err)
	}

	c.logger.Debug("response written", "id", cl.id, "path", cl.opts.OutputFile, "bytes", n)

	return nil
}
