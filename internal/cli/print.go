package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/adamwoolhether/httpreq/client"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"
)

type printer struct {
	w      io.Writer
	ok     *color.Color
	redir  *color.Color
	failed *color.Color
	name   *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:      w,
		ok:     color.New(color.FgGreen, color.Bold),
		redir:  color.New(color.FgYellow, color.Bold),
		failed: color.New(color.FgRed, color.Bold),
		name:   color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{p.ok, p.redir, p.failed, p.name} {
			c.DisableColor()
		}
	}
	return p
}

// envelope prints the response. With include set, the status line and
// headers come first; with path set, only the selected JSON value is
// printed.
func (p *printer) envelope(env *client.Envelope, include bool, path string) error {
	if include {
		p.status(env.StatusCode)
		p.headers(env.Header)
		fmt.Fprintln(p.w)
	}

	if path != "" {
		v, err := selectJSON(env.Body, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.w, v)
		return nil
	}

	data, err := renderBody(env.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if _, err := p.w.Write(data); err != nil {
		return err
	}
	if data[len(data)-1] != '\n' {
		fmt.Fprintln(p.w)
	}

	return nil
}

func (p *printer) status(code int) {
	c := p.ok
	switch {
	case code >= http.StatusBadRequest:
		c = p.failed
	case code >= http.StatusMultipleChoices:
		c = p.redir
	}
	c.Fprintf(p.w, "HTTP %d %s\n", code, http.StatusText(code))
}

func (p *printer) headers(h http.Header) {
	for _, k := range slices.Sorted(maps.Keys(h)) {
		for _, v := range h[k] {
			fmt.Fprintf(p.w, "%s: %s\n", p.name.Sprint(k), v)
		}
	}
}

// renderBody returns the bytes to print for a decoded body. Parsed JSON is
// re-encoded with indentation.
func renderBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}
	return data, nil
}

// selectJSON extracts the value at a gjson path from a JSON body.
func selectJSON(body any, path string) (string, error) {
	var data []byte
	switch b := body.(type) {
	case []byte:
		data = b
	case string:
		data = []byte(b)
	default:
		var err error
		if data, err = json.Marshal(b); err != nil {
			return "", fmt.Errorf("rendering body: %w", err)
		}
	}

	if !gjson.ValidBytes(data) {
		return "", errors.New("response body is not JSON")
	}

	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return "", fmt.Errorf("no value at %q", path)
	}

	return res.String(), nil
}
