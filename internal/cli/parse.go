package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// parseHeaders turns "Name: value" pairs into a header set.
func parseHeaders(raw []string) (http.Header, error) {
	headers := make(http.Header, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected Name: value", h)
		}
		headers.Add(name, strings.TrimSpace(value))
	}
	return headers, nil
}

// parseValues turns "key=value" pairs into url.Values, keeping repeats.
func parseValues(flag string, raw []string) (url.Values, error) {
	values := make(url.Values, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --%s %q, expected key=value", flag, kv)
		}
		values.Add(key, value)
	}
	return values, nil
}

// parseJSONFields builds a JSON object from "key=value" pairs. Values that
// are valid JSON (numbers, booleans, null, arrays, objects) keep their type;
// anything else is sent as a string.
func parseJSONFields(raw []string) (map[string]any, error) {
	fields := make(map[string]any, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --json %q, expected key=value", kv)
		}

		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		fields[key] = v
	}
	return fields, nil
}
