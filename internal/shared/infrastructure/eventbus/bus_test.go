package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/internal/shared/infrastructure/eventbus"
)

type recorder struct {
	name string
	log  *[]string
	err  error
}

func (r *recorder) Update(ctx context.Context, event string) error {
	*r.log = append(*r.log, r.name+":"+event)
	return r.err
}

func newBus() *eventbus.Bus[string] {
	return eventbus.NewBus[string](slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	var log []string
	bus := newBus()
	bus.Subscribe(&recorder{name: "a", log: &log})
	bus.Subscribe(&recorder{name: "b", log: &log})
	bus.Subscribe(&recorder{name: "c", log: &log})

	require.NoError(t, bus.Publish(context.Background(), "created"))

	assert.Equal(t, []string{"a:created", "b:created", "c:created"}, log)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := newBus()
	assert.NoError(t, bus.Publish(context.Background(), "created"))
	assert.Equal(t, 0, bus.Len())
}

func TestBus_DuplicateSubscription(t *testing.T) {
	var log []string
	bus := newBus()
	r := &recorder{name: "a", log: &log}
	bus.Subscribe(r)
	bus.Subscribe(r)

	require.NoError(t, bus.Publish(context.Background(), "x"))
	assert.Equal(t, []string{"a:x", "a:x"}, log)

	bus.Unsubscribe(r)
	assert.Equal(t, 1, bus.Len())
}

func TestBus_Unsubscribe(t *testing.T) {
	var log []string
	bus := newBus()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Unsubscribe(a)
	bus.Unsubscribe(&recorder{name: "stranger", log: &log})

	require.NoError(t, bus.Publish(context.Background(), "x"))
	assert.Equal(t, []string{"b:x"}, log)
	assert.Equal(t, 1, bus.Len())
}

func TestBus_FailingSubscriberStopsDelivery(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	bus := newBus()
	bus.Subscribe(&recorder{name: "a", log: &log})
	bus.Subscribe(&recorder{name: "b", log: &log, err: boom})
	bus.Subscribe(&recorder{name: "c", log: &log})

	err := bus.Publish(context.Background(), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, eventbus.ErrListenerFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a:x", "b:x"}, log)
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), eventbus.Message{ID: "1", Type: "todo.task.created", Body: []byte("{}")}))
	assert.NoError(t, p.Close())
}
