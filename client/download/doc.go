// Package download writes streamed HTTP response bodies to disk.
//
// [ToFile] copies the body into a temporary file next to the destination
// and renames it into place only after every byte has been flushed, so a
// failed transfer never leaves a partial file behind:
//
//	n, err := download.ToFile(ctx, resp.Body, resp.ContentLength, destPath, logger,
//		download.WithChecksum(sha256.New(), expectedHex),
//		download.WithProgress(),
//	)
//
// Most callers reach it through
// [github.com/adamwoolhether/httpreq/client.Client.RequestStream] by setting
// Options.OutputFile.
package download
