package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 10
	idleConnTimeout     = 90 * time.Second
)

// pool holds the keep-alive transports shared by every call on a Client.
// Certificate verification is a property of the TLS config, so calls that
// disable it get a transport of their own.
type pool struct {
	verified   *http.Transport
	unverified *http.Transport
}

func newPool() *pool {
	return &pool{
		verified:   newTransport(nil),
		unverified: newTransport(&tls.Config{InsecureSkipVerify: true}), // nolint: gosec
	}
}

// newTransport builds an HTTP/1.1 keep-alive transport. The per-call
// context carries the timeout, so no dial or header deadlines are set here.
func newTransport(tlsConf *tls.Config) *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:     tlsConf,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
	}
}

// noRedirects hands 3xx responses back to the caller untouched.
func noRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
