// Package httpreq exposes the client builder and package-level helpers
// backed by a shared default client.
package httpreq

import (
	"context"
	"sync"

	"github.com/adamwoolhether/httpreq/client"
)

var defaultClient = sync.OnceValues(func() (*client.Client, error) {
	return client.Build()
})

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, pooled keep-alive transports are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// Request fires a buffered call on the default client.
// See [client.Client.Request].
func Request(ctx context.Context, target client.Target, opts client.Options) (*client.Envelope, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, target, opts)
}

// RequestBodyOnly fires a buffered call on the default client and returns
// only the decoded body. See [client.Client.RequestBodyOnly].
func RequestBodyOnly(ctx context.Context, target client.Target, opts client.Options) (any, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.RequestBodyOnly(ctx, target, opts)
}

// RequestStream fires a streaming call on the default client.
// See [client.Client.RequestStream].
func RequestStream(ctx context.Context, target client.Target, opts client.Options) (*client.StreamResult, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.RequestStream(ctx, target, opts)
}
