package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DecodeMode selects how a buffered response body is decoded.
type DecodeMode string

const (
	// DecodeAuto parses JSON responses and returns everything else as text.
	DecodeAuto DecodeMode = "auto"
	// DecodeText always returns the body as a string.
	DecodeText DecodeMode = "text"
	// DecodeBuffer always returns the raw body bytes.
	DecodeBuffer DecodeMode = "buffer"
)

// Envelope is the buffered outcome of [Client.Request].
//
// Body holds []byte for [DecodeBuffer], a string for [DecodeText] and for
// non-JSON responses, and the parsed value (map[string]any, []any, float64
// or json.Number, string, bool or nil) for JSON responses. A JSON response
// that fails to parse is returned as a string holding the raw text.
type Envelope struct {
	StatusCode int
	Header     http.Header
	Body       any
}

var errTrailingData = errors.New("trailing data after JSON value")

// decodeBody picks the representation of data. The returned error reports
// why a JSON body fell back to text; it is informational only.
func decodeBody(data []byte, contentType string, mode DecodeMode, useNumber bool) (any, error) {
	if mode == DecodeBuffer {
		return data, nil
	}

	if mode != DecodeText && strings.Contains(contentType, "application/json") {
		v, err := parseJSON(data, useNumber)
		if err != nil {
			return string(data), err
		}
		return v, nil
	}

	return string(data), nil
}

// parseJSON accepts exactly one JSON value, surrounded by optional whitespace.
func parseJSON(data []byte, useNumber bool) (any, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	if useNumber {
		d.UseNumber()
	}

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return v, nil
}
