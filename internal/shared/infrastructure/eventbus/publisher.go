package eventbus

import (
	"context"
	"log/slog"
	"time"
)

// Message is one serialized event on its way to a broker.
type Message struct {
	ID string
	// Type doubles as the routing key.
	Type      string
	Body      []byte
	Timestamp time.Time
}

// Publisher relays messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// NoopPublisher drops every message. It stands in when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, msg Message) error {
	p.logger.DebugContext(ctx, "event dropped, no broker configured", "type", msg.Type, "id", msg.ID)
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
