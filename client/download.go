package client

import (
	"hash"

	"github.com/adamwoolhether/httpreq/client/download"
)

// DownloadOption tunes the file write of [Client.RequestStream].
type DownloadOption = download.Option

// WithChecksum verifies the written file against expected, the hex-encoded
// digest produced by h (e.g. sha256.New()).
func WithChecksum(h hash.Hash, expected string) DownloadOption {
	return download.WithChecksum(h, expected)
}

// WithProgress enables periodic progress logging while writing the file.
func WithProgress() DownloadOption { return download.WithProgress() }

// WithSkipExisting reports success without reading the body when the
// output file already exists.
func WithSkipExisting() DownloadOption { return download.WithSkipExisting() }
