// Package eventbus delivers events to in-process subscribers and relays them
// to an external message broker.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrListenerFailed wraps the error of the subscriber that aborted a publish.
var ErrListenerFailed = errors.New("event listener failed")

// Subscriber receives events of type E.
type Subscriber[E any] interface {
	Update(ctx context.Context, event E) error
}

// Bus is an ordered, synchronous publish mechanism. It is not safe for
// concurrent use and subscribers must not publish or (un)subscribe from Update.
type Bus[E any] struct {
	subscribers []Subscriber[E]
	logger      *slog.Logger
}

// NewBus creates an empty bus.
func NewBus[E any](logger *slog.Logger) *Bus[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus[E]{logger: logger}
}

// Subscribe appends s. Subscribing the same value twice delivers every event to it twice.
func (b *Bus[E]) Subscribe(s Subscriber[E]) {
	b.subscribers = append(b.subscribers, s)
	b.logger.Debug("subscriber registered",
		"subscriber", fmt.Sprintf("%T", s),
		"count", len(b.subscribers),
	)
}

// Unsubscribe removes the first subscription equal to s. Unknown subscribers are ignored.
func (b *Bus[E]) Unsubscribe(s Subscriber[E]) {
	for i, existing := range b.subscribers {
		if existing == s {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			b.logger.Debug("subscriber removed",
				"subscriber", fmt.Sprintf("%T", s),
				"count", len(b.subscribers),
			)
			return
		}
	}
}

// Len returns the number of subscriptions.
func (b *Bus[E]) Len() int {
	return len(b.subscribers)
}

// Publish delivers event to every subscriber in subscription order. The first
// failing subscriber stops delivery; later subscribers are not notified.
func (b *Bus[E]) Publish(ctx context.Context, event E) error {
	start := time.Now()

	// snapshot
	subscribers := append([]Subscriber[E](nil), b.subscribers...)
	for i, s := range subscribers {
		if err := s.Update(ctx, event); err != nil {
			b.logger.Error("subscriber failed, remaining subscribers skipped",
				"subscriber", fmt.Sprintf("%T", s),
				"position", i,
				"skipped", len(subscribers)-i-1,
				"error", err,
			)
			return fmt.Errorf("%w: %T: %w", ErrListenerFailed, s, err)
		}
	}

	b.logger.Debug("event dispatched",
		"subscribers", len(subscribers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
