// Package http_client provides the shared HTTP client used by the network
// backends (Gemini, S3). One client per process keeps connections pooled.
package http_client

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout applies when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// New creates a pooled client. An empty timeout means DefaultTimeout.
func New(timeout string) (*http.Client, error) {
	d := DefaultTimeout
	if timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http timeout '%s': %w", timeout, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("http timeout must be positive, got %s", parsed)
		}
		d = parsed
	}

	return &http.Client{
		Timeout:   d,
		Transport: NewTransport(),
	}, nil
}

// NewTransport returns the pooled transport shared by New. Callers that take
// a RoundTripper instead of a client (the S3 sink) use it directly.
func NewTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 90 * time.Second
	return t
}

// Close releases idle connections held by the client.
func Close(client *http.Client) error {
	client.CloseIdleConnections()
	return nil
}
