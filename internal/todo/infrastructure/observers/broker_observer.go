package observers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/toropyga03/todo/internal/shared/infrastructure/eventbus"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/pkg/observability"
)

// ErrBrokerUnavailable is returned while the circuit is open.
var ErrBrokerUnavailable = errors.New("event broker unavailable")

// BreakerConfig controls when the relay stops calling the broker.
type BreakerConfig struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold uint32
	// OpenTimeout is how long the circuit stays open before a trial publish.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig opens after 3 failures for 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 3, OpenTimeout: 30 * time.Second}
}

// eventMessage is the JSON body sent to the broker.
type eventMessage struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	OccurredAt time.Time    `json:"occurred_at"`
	Task       *task.Record `json:"task,omitempty"`
}

// BrokerObserver relays events to a message broker behind a circuit breaker.
type BrokerObserver struct {
	publisher eventbus.Publisher
	breaker   *gobreaker.CircuitBreaker[struct{}]
	metrics   observability.Metrics
	logger    *slog.Logger
}

func NewBrokerObserver(publisher eventbus.Publisher, cfg BreakerConfig, metrics observability.Metrics, logger *slog.Logger) *BrokerObserver {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:    "event-broker",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BrokerObserver{
		publisher: publisher,
		breaker:   gobreaker.NewCircuitBreaker[struct{}](settings),
		metrics:   metrics,
		logger:    logger,
	}
}

// State exposes the breaker state for health reporting.
func (o *BrokerObserver) State() gobreaker.State {
	return o.breaker.State()
}

func (o *BrokerObserver) Update(ctx context.Context, event task.Event) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}

	tag := observability.T("kind", event.Kind)
	_, err = o.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, o.publisher.Publish(ctx, msg)
	})
	if err != nil {
		o.metrics.Counter(observability.MetricEventsFailed, 1, tag)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
		}
		return fmt.Errorf("failed to publish %s: %w", event.Kind, err)
	}

	o.metrics.Counter(observability.MetricEventsPublished, 1, tag)
	return nil
}

func toMessage(event task.Event) (eventbus.Message, error) {
	body := eventMessage{
		ID:         event.ID.String(),
		Name:       event.Name,
		Kind:       event.Kind,
		OccurredAt: event.OccurredAt,
	}
	if event.Task != nil {
		record := task.ToRecord(event.Task)
		body.Task = &record
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return eventbus.Message{}, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return eventbus.Message{
		ID:        event.ID.String(),
		Type:      event.Kind,
		Body:      payload,
		Timestamp: event.OccurredAt,
	}, nil
}
