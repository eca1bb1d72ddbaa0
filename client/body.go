package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type bodyKind uint8

const (
	bodyNone bodyKind = iota
	bodyRaw
	bodyValue
)

// Body is a request payload: either bytes sent verbatim or a structured
// value encoded according to the request's Content-Type. The zero value
// carries no payload.
type Body struct {
	kind  bodyKind
	raw   []byte
	value any
}

// RawBody sends b verbatim.
func RawBody(b []byte) Body {
	return Body{kind: bodyRaw, raw: b}
}

// TextBody sends s verbatim.
func TextBody(s string) Body {
	return Body{kind: bodyRaw, raw: []byte(s)}
}

// ValueBody encodes v as JSON when the request declares a JSON
// Content-Type, and as a form otherwise. Strings and byte slices are
// treated as [TextBody] and [RawBody].
func ValueBody(v any) Body {
	switch v := v.(type) {
	case string:
		return TextBody(v)
	case []byte:
		return RawBody(v)
	case json.RawMessage:
		return RawBody(v)
	}
	return Body{kind: bodyValue, value: v}
}

// IsZero reports whether b carries no payload.
func (b Body) IsZero() bool {
	switch b.kind {
	case bodyRaw:
		return len(b.raw) == 0
	case bodyValue:
		return b.value == nil
	}
	return true
}

// EncodeBody serializes b for the wire. When headers has no Content-Length
// entry, the payload's byte length is recorded there; an existing entry is
// left alone. Header keys are matched literally. EncodeBody returns nil for
// an empty body and never touches headers in that case.
func EncodeBody(b Body, headers http.Header) ([]byte, error) {
	if b.IsZero() {
		return nil, nil
	}

	var payload []byte
	switch b.kind {
	case bodyRaw:
		payload = b.raw

	case bodyValue:
		if declaresJSON(headers) {
			data, err := json.Marshal(b.value)
			if err != nil {
				return nil, fmt.Errorf("marshaling json body: %w", err)
			}
			payload = data
			break
		}

		values, err := toValues(b.value)
		if err != nil {
			return nil, fmt.Errorf("encoding form body: %w", err)
		}
		payload = []byte(values.Encode())
	}

	if headers != nil && !hasLiteral(headers, "Content-Length") {
		headers["Content-Length"] = []string{strconv.Itoa(len(payload))}
	}

	return payload, nil
}

func declaresJSON(headers http.Header) bool {
	for _, v := range headers["Content-Type"] {
		if strings.Contains(v, "application/json") {
			return true
		}
	}
	return false
}

func hasLiteral(headers http.Header, key string) bool {
	values := headers[key]
	return len(values) > 0 && values[0] != ""
}
