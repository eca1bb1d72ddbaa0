package client_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/httpreq/client"
)

func TestValidate_Valid(t *testing.T) {
	testCases := map[string]client.Options{
		"zero":      {},
		"full":      {Method: "PATCH", Timeout: 1, Decode: client.DecodeBuffer},
		"extension": {Method: "PROPFIND"},
		"lowercase": {Method: "get"},
	}

	for name, opts := range testCases {
		t.Run(name, func(t *testing.T) {
			if err := client.Validate(opts); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	testCases := map[string]struct {
		opts  client.Options
		field string
	}{
		"methodWithSpace": {opts: client.Options{Method: "GET ME"}, field: "Method"},
		"methodSeparator": {opts: client.Options{Method: "GET/1"}, field: "Method"},
		"negativeTimeout": {opts: client.Options{Timeout: -1}, field: "Timeout"},
		"unknownDecode":   {opts: client.Options{Decode: "xml"}, field: "Decode"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := client.Validate(tc.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var fields client.FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T", err)
			}
			if len(fields) != 1 || fields[0].Field != tc.field {
				t.Fatalf("expected a single %q field error, got %v", tc.field, fields)
			}
			if fields[0].Err == "" {
				t.Error("expected a translated message")
			}
		})
	}
}
