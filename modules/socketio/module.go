// Package socketio emits run progress events to a socket.io server. Each
// event is emitted under its short name (e.g. "unit_passed") with the topic
// and a JSON-shaped payload.
package socketio

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds the initial connection.
const DefaultConnectTimeout = 15 * time.Second

// Options configure the publisher connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Publisher holds one persistent socket for the whole run.
type Publisher struct {
	mu sync.Mutex
	io *socket.Socket
}

var _ events.Publisher = (*Publisher)(nil)

// baseURL splits a socket.io URL into the address the manager dials and the
// handshake path.
func baseURL(raw string) (string, string, error) {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", "", fmt.Errorf("socket.io URL '%s' must include scheme and host", raw)
	}
	return fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host), parsedURL.Path, nil
}

// Dial connects and waits for the server to accept the socket.
func Dial(ctx context.Context, o Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", o.URL)

	base, path, err := baseURL(o.URL)
	if err != nil {
		return nil, err
	}

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	timeout := o.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	connectChan := make(chan error, 1)
	manager := socket.NewManager(base, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to socket.io server.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// payload converts an event into the generic map shape socket.io serializes.
func payload(topic string, event any) (map[string]any, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling event: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("event %s is not an object: %w", events.Name(topic), err)
	}
	return map[string]any{"topic": topic, "data": data}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	msg, err := payload(topic, event)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.io == nil {
		return fmt.Errorf("socket.io publisher is closed")
	}
	p.io.Emit(events.Name(topic), msg)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.io != nil {
		p.io.Disconnect()
		p.io = nil
	}
	return nil
}
