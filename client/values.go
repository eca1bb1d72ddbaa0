package client

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/google/go-querystring/query"
)

// toValues converts the accepted query and form shapes into url.Values.
// Structs are encoded by their `url` tags.
func toValues(v any) (url.Values, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return v, nil
	case map[string][]string:
		return url.Values(v), nil
	case map[string]string:
		values := make(url.Values, len(v))
		for k, s := range v {
			values.Set(k, s)
		}
		return values, nil
	case map[string]any:
		values := make(url.Values, len(v))
		for k, x := range v {
			values[k] = formValues(x)
		}
		return values, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported value type %T", v)
	}

	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}

	return values, nil
}

// formValues renders a single map entry. Slices repeat the key; anything
// that is not a scalar encodes as an empty value.
func formValues(x any) []string {
	switch x := x.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{x}
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, formScalar(e))
		}
		return out
	}
	return []string{formScalar(x)}
}

func formScalar(x any) string {
	switch x.(type) {
	case string, bool, fmt.Stringer,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(x)
	}
	return ""
}
