package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultTimeout bounds a call whose Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Client dispatches calls over a pool of keep-alive transports.
// It is safe for concurrent use; calls share nothing but the pool.
type Client struct {
	secure   *http.Client
	insecure *http.Client
	logger   *slog.Logger
	tracer   trace.Tracer
	timeout  time.Duration
}

// Options configures a single call.
type Options struct {
	// Method is the HTTP verb, GET when empty.
	Method string `validate:"omitempty,token"`
	// Headers are sent as given. The map is shared with the caller: when a
	// body is encoded and no Content-Length entry exists, one is added.
	Headers http.Header
	// Body is ignored by [Client.RequestStream].
	Body Body
	// Query is merged into the target's query string. It accepts
	// url.Values, map[string]string, map[string][]string, map[string]any
	// or a struct with `url` tags.
	Query any
	// InsecureSkipVerify disables certificate verification for https targets.
	InsecureSkipVerify bool
	// Timeout bounds the whole call, from dial to the last body byte.
	// Zero selects the client's default.
	Timeout time.Duration `validate:"gte=0"`
	// Decode governs how [Client.Request] decodes the body.
	Decode DecodeMode `validate:"omitempty,oneof=auto text buffer"`
	// UseNumber decodes JSON numbers as json.Number instead of float64.
	UseNumber bool
	// OutputFile is where [Client.RequestStream] writes the body.
	OutputFile string
	// Download tunes the file write of [Client.RequestStream].
	Download []DownloadOption
}

// call is one normalized unit of work.
type call struct {
	id      string
	target  *RequestTarget
	opts    Options
	payload []byte
}

// Build instantiates a Client. Without options, it owns two HTTP/1.1
// keep-alive transports: one verifying certificates, one used for https
// calls that set InsecureSkipVerify.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("no-op tracer"),
		timeout: DefaultTimeout,
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracer != nil {
		client.tracer = opts.tracer
	}
	if opts.timeout != nil {
		client.timeout = *opts.timeout
	}

	var secure, insecure http.RoundTripper
	switch {
	case opts.rt != nil:
		secure, insecure = opts.rt, opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		secure, insecure = opts.client.Transport, opts.client.Transport
	default:
		p := newPool()
		secure, insecure = p.verified, p.unverified
	}
	if opts.userAgent != "" {
		secure = userAgent{value: opts.userAgent, base: secure}
		insecure = userAgent{value: opts.userAgent, base: insecure}
	}

	base := http.Client{CheckRedirect: noRedirects}
	if opts.client != nil {
		base = *opts.client
	}

	sc, ic := base, base
	sc.Transport, ic.Transport = secure, insecure
	client.secure, client.insecure = &sc, &ic

	return client, nil
}

// Request fires the call and buffers the whole response body. Any status
// code is a successful result; only transport failures, timeouts and
// invalid input produce an error.
func (c *Client) Request(ctx context.Context, target Target, opts Options) (*Envelope, error) {
	cl, err := c.prepare(target, opts, true)
	if err != nil {
		return nil, err
	}

	var env Envelope
	readFn := func(resp *http.Response) (bool, error) {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, err
		}

		body, jsonErr := decodeBody(data, resp.Header.Get("Content-Type"), cl.opts.Decode, cl.opts.UseNumber)
		if jsonErr != nil {
			c.logger.Debug("malformed json body returned as text", "id", cl.id, "error", jsonErr)
		}

		env = Envelope{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}

		return false, nil
	}

	if err := c.exec(ctx, cl, readFn); err != nil {
		return nil, err
	}

	return &env, nil
}

// RequestBodyOnly behaves like [Client.Request] but returns only the
// decoded body.
func (c *Client) RequestBodyOnly(ctx context.Context, target Target, opts Options) (any, error) {
	env, err := c.Request(ctx, target, opts)
	if err != nil {
		return nil, err
	}

	return env.Body, nil
}

// prepare validates and normalizes the call, and encodes its body when
// withBody is set.
func (c *Client) prepare(target Target, opts Options, withBody bool) (*call, error) {
	if err := Validate(opts); err != nil {
		return nil, fmt.Errorf("validating options: %w", err)
	}

	if opts.Timeout == 0 {
		opts.Timeout = c.timeout
	}

	rt, opts, err := Normalize(target, opts)
	if err != nil {
		return nil, err
	}

	cl := call{
		id:     uuid.NewString(),
		target: rt,
		opts:   opts,
	}

	if withBody {
		if cl.payload, err = EncodeBody(opts.Body, opts.Headers); err != nil {
			return nil, fmt.Errorf("encoding body: %w", err)
		}
	}

	return &cl, nil
}

// exec runs the call under its timeout budget and hands the response to fn.
// Unless fn keeps the response, its body is closed once fn returns. A kept
// body releases the timeout budget when the caller closes it.
func (c *Client) exec(ctx context.Context, cl *call, fn execFn) (err error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, cl.opts.Timeout)

	var kept bool
	defer func() {
		if !kept {
			cancel()
		}
	}()

	rawURL := cl.target.String()

	spanCtx, span := c.tracer.Start(ctx, "httpreq.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("httpreq.request_id", cl.id),
			attribute.String("http.request.method", cl.opts.Method),
			attribute.String("url.full", rawURL),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader
	if cl.payload != nil {
		body = bytes.NewReader(cl.payload)
	}

	req, err := http.NewRequestWithContext(spanCtx, cl.opts.Method, rawURL, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	req.Header = cl.opts.Headers.Clone()
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}

	hc := c.secure
	if cl.opts.InsecureSkipVerify && cl.target.Protocol == protocolHTTPS {
		hc = c.insecure
	}

	start := time.Now()
	c.logger.Debug("request dispatched", "id", cl.id, "method", cl.opts.Method, "url", rawURL)

	resp, err := hc.Do(req)
	if err != nil {
		return c.timeoutErr(parent, ctx, cl, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Debug("response received", "id", cl.id, "status", resp.StatusCode, "since", time.Since(start).String())

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

	keep, err := fn(resp)
	if keep && err == nil {
		kept = true
		return nil
	}

	if cerr := resp.Body.Close(); cerr != nil {
		c.logger.Error("failed to close response body", "id", cl.id, "error", cerr)
	}

	if err != nil {
		return c.timeoutErr(parent, ctx, cl, err)
	}

	return nil
}

// timeoutErr replaces err with a timeout error when the call's own budget,
// rather than the caller's context, ended it.
func (c *Client) timeoutErr(parent, ctx context.Context, cl *call, err error) error {
	if parent.Err() != nil || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}

	c.logger.Debug("request timed out", "id", cl.id, "timeout", cl.opts.Timeout.String())

	return fmt.Errorf("%w after %s: %w", ErrTimeout, cl.opts.Timeout, context.DeadlineExceeded)
}

// cancelOnClose releases the call's timeout budget along with the body.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
