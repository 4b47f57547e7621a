// -- pkg/snapshot/transport.go --
package snapshot

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Transport tuning for a single-consumer polling client. Far smaller pools
// than a crawler would use; there is at most one request in flight.
const (
	defaultDialTimeout           = 5 * time.Second
	defaultKeepAliveInterval     = 15 * time.Second
	defaultTLSHandshakeTimeout   = 5 * time.Second
	defaultResponseHeaderTimeout = 10 * time.Second
	defaultRequestTimeout        = 30 * time.Second

	defaultMaxIdleConns    = 4
	defaultIdleConnTimeout = 30 * time.Second
)

// newHTTPClient builds the http.Client used for snapshot fetches.
func newHTTPClient(timeout time.Duration, forceHTTP2 bool, log *zap.Logger) *http.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	dialer := &net.Dialer{
		Timeout:   defaultDialTimeout,
		KeepAlive: defaultKeepAliveInterval,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaultResponseHeaderTimeout,
		MaxIdleConns:          defaultMaxIdleConns,
		IdleConnTimeout:       defaultIdleConnTimeout,
		ForceAttemptHTTP2:     forceHTTP2,
	}
	if forceHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			log.Warn("Failed to configure HTTP/2, continuing with HTTP/1.1", zap.Error(err))
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
