package client

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

const (
	protocolHTTP  = "http:"
	protocolHTTPS = "https:"
)

// Target is the destination of a call: either a [URL] or an [Endpoint].
type Target interface {
	resolve() (*RequestTarget, error)
}

// URL is an absolute URL target, such as "https://example.com/todos/1".
type URL string

// Endpoint describes a target by its parts.
type Endpoint struct {
	// Protocol is "https:" when empty. The trailing colon is optional.
	Protocol string
	Hostname string
	// Port is the protocol default when zero.
	Port int
	// Path is "/" when empty and may carry its own query string. A leading
	// "/" is added when missing so the path never extends the hostname.
	Path string
}

// RequestTarget is the canonical destination of a single call.
type RequestTarget struct {
	Protocol string
	Hostname string
	Port     int
	Path     string
	RawQuery string
}

func (u URL) resolve() (*RequestTarget, error) {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidTarget, string(u))
	}

	var port int
	if p := parsed.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("%w: port %q: %w", ErrInvalidTarget, p, err)
		}
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	return &RequestTarget{
		Protocol: strings.ToLower(parsed.Scheme) + ":",
		Hostname: asciiHost(parsed.Hostname()),
		Port:     port,
		Path:     path,
		RawQuery: parsed.RawQuery,
	}, nil
}

func (e Endpoint) resolve() (*RequestTarget, error) {
	protocol := strings.ToLower(e.Protocol)
	switch {
	case protocol == "":
		protocol = protocolHTTPS
	case !strings.HasSuffix(protocol, ":"):
		protocol += ":"
	}

	path, rawQuery, _ := strings.Cut(e.Path, "?")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &RequestTarget{
		Protocol: protocol,
		Hostname: asciiHost(e.Hostname),
		Port:     e.Port,
		Path:     path,
		RawQuery: rawQuery,
	}, nil
}

// Host returns the host[:port] authority of the target. Only IPv6
// literals are bracketed.
func (t *RequestTarget) Host() string {
	host := t.Hostname
	if addr, err := netip.ParseAddr(host); err == nil && addr.Is6() {
		host = "[" + host + "]"
	}
	if t.Port != 0 {
		return host + ":" + strconv.Itoa(t.Port)
	}
	return host
}

// RequestURI returns the path followed by the query string, if any.
func (t *RequestTarget) RequestURI() string {
	if t.RawQuery == "" {
		return t.Path
	}
	return t.Path + "?" + t.RawQuery
}

// String renders the target as an absolute URL.
func (t *RequestTarget) String() string {
	return t.Protocol + "//" + t.Host() + t.RequestURI()
}

// MergeQuery appends the encoded values to the query string, joining with
// '&' when one is already present.
func (t *RequestTarget) MergeQuery(values url.Values) {
	encoded := values.Encode()
	if encoded == "" {
		return
	}

	if t.RawQuery == "" {
		t.RawQuery = encoded
		return
	}
	t.RawQuery += "&" + encoded
}

// asciiHost converts an internationalized hostname to its punycode form.
// Hostnames the lookup profile rejects are kept as given; they fail later
// at the transport if they are truly malformed.
func asciiHost(host string) string {
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}
	return ascii
}

// Normalize resolves target and returns it along with a copy of opts with
// defaults applied and opts.Query merged into the target's query string.
// The caller's Options value is not modified; its Headers map is shared.
func Normalize(target Target, opts Options) (*RequestTarget, Options, error) {
	if target == nil {
		return nil, opts, fmt.Errorf("%w: nil target", ErrInvalidTarget)
	}

	rt, err := target.resolve()
	if err != nil {
		return nil, opts, err
	}

	if opts.Query != nil {
		values, err := toValues(opts.Query)
		if err != nil {
			return nil, opts, fmt.Errorf("encoding query: %w", err)
		}
		rt.MergeQuery(values)
	}

	opts.Method = strings.ToUpper(opts.Method)
	if opts.Method == "" {
		opts.Method = "GET"
	}
	if opts.Headers == nil {
		opts.Headers = make(map[string][]string)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Decode == "" {
		opts.Decode = DecodeAuto
	}

	return rt, opts, nil
}
