package events

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
)

// LogPublisher writes every event to the context logger at debug level.
type LogPublisher struct{}

func (l *LogPublisher) Publish(ctx context.Context, topic string, event any) error {
	ctxlog.FromContext(ctx).Debug("Event published.", "event", Name(topic), "payload", event)
	return nil
}

func (l *LogPublisher) Close() error {
	return nil
}
