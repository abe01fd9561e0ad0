package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange task events are relayed to.
const DefaultExchange = "todo.task.events"

// ErrNotConfirmed is returned when the broker nacks a message.
var ErrNotConfirmed = errors.New("message not confirmed by broker")

// RabbitMQConfig configures NewRabbitMQPublisher.
type RabbitMQConfig struct {
	URL string
	// Exchange defaults to DefaultExchange.
	Exchange string
	// ConfirmTimeout bounds the wait for a broker ack; 5s when zero.
	ConfirmTimeout time.Duration
}

// RabbitMQPublisher publishes to a durable topic exchange with publisher
// confirms, so Publish returns only after the broker has taken the message.
type RabbitMQPublisher struct {
	cfg     RabbitMQConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

func NewRabbitMQPublisher(cfg RabbitMQConfig, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 5 * time.Second
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	p := &RabbitMQPublisher{cfg: cfg, conn: conn, logger: logger}

	if err := p.setup(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Debug("RabbitMQ publisher connected", "exchange", cfg.Exchange)
	return p, nil
}

func (p *RabbitMQPublisher) setup() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.cfg.Exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}
	p.channel = ch
	return nil
}

// Publish sends msg and waits for the broker's confirmation.
func (p *RabbitMQPublisher) Publish(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ConfirmTimeout)
	defer cancel()

	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx,
		p.cfg.Exchange,
		msg.Type,
		false,
		false,
		amqp.Publishing{
			MessageId:    msg.ID,
			Type:         msg.Type,
			AppId:        "todo",
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         msg.Body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Type, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("waiting for confirmation of %s: %w", msg.ID, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s", ErrNotConfirmed, msg.ID)
	}

	p.logger.DebugContext(ctx, "event published", "type", msg.Type, "id", msg.ID, "size", len(msg.Body))
	return nil
}

// IsClosed reports whether the broker connection has gone away.
func (p *RabbitMQPublisher) IsClosed() bool {
	return p.conn == nil || p.conn.IsClosed()
}

// Close closes the channel, then the connection.
func (p *RabbitMQPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
