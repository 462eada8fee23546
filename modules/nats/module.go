// Package nats publishes run progress events to NATS subjects. The subject is
// the event topic, e.g. axiomgrid.unit.passed; payloads are JSON.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/specialistvlad/axiomgrid/internal/events"
)

// Publisher publishes events to NATS subjects.
type Publisher struct {
	conn *natsgo.Conn
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher connects to the server at url. Extra options are appended to
// the reconnect defaults.
func NewPublisher(url string, opts ...natsgo.Option) (*Publisher, error) {
	defaults := []natsgo.Option{
		natsgo.Name("axiomgrid"),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(time.Second),
	}
	nc, err := natsgo.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.conn.Publish(topic, data)
}

// Close flushes buffered events before closing the connection.
func (p *Publisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := p.conn.FlushWithContext(ctx)
	p.conn.Close()
	return err
}
