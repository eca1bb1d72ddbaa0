// Package client provides the core of the request helper built on
// [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithDefaultTimeout(5 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Targets
//
// A call is addressed either by an absolute [URL] or by an [Endpoint]:
//
//	client.URL("https://api.example.com/v1/todos?done=false")
//	client.Endpoint{Hostname: "api.example.com", Path: "/v1/todos"}
//
// Options.Query is merged into whichever query string the target carries.
//
// # Buffered Calls
//
// [Client.Request] reads the whole response and decodes it according to
// its Content-Type and Options.Decode. Non-2xx responses are returned like
// any other:
//
//	env, err := c.Request(ctx, client.URL(u), client.Options{
//		Method:  http.MethodPost,
//		Headers: http.Header{"Content-Type": {"application/json"}},
//		Body:    client.ValueBody(map[string]any{"title": "foo"}),
//	})
//
// [Client.RequestBodyOnly] returns just the decoded body.
//
// # Streaming
//
// [Client.RequestStream] rejects non-2xx responses up front, then either
// writes the body to Options.OutputFile or hands back the live response:
//
//	res, err := c.RequestStream(ctx, client.URL(u), client.Options{
//		OutputFile: "/tmp/file.bin",
//		Download:   []client.DownloadOption{client.WithChecksum(sha256.New(), expectedHex)},
//	})
//
// For lower-level control of the file write see the
// [github.com/adamwoolhether/httpreq/client/download] package.
package client
