package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event names as shown to users.
const (
	EventCreated    = "Task created"
	EventDeleted    = "Task deleted"
	EventSaved      = "Tasks saved to store"
	EventSaveFailed = "Error saving tasks to store"
	EventLoaded     = "Tasks loaded from store"
	EventLoadFailed = "Error loading tasks from store"
)

// Routing keys identify the kind of an event independently of its message.
const (
	RoutingKeyCreated       = "todo.task.created"
	RoutingKeyStatusUpdated = "todo.task.status_updated"
	RoutingKeyDeleted       = "todo.task.deleted"
	RoutingKeySaved         = "todo.store.saved"
	RoutingKeySaveFailed    = "todo.store.save_failed"
	RoutingKeyLoaded        = "todo.store.loaded"
	RoutingKeyLoadFailed    = "todo.store.load_failed"
)

// Event is a registry lifecycle notification. Task is nil for store events.
type Event struct {
	ID         uuid.UUID
	Name       string
	Kind       string
	Task       *Task
	OccurredAt time.Time
}

// NewEvent stamps a new event.
func NewEvent(kind, name string, t *Task) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		Kind:       kind,
		Task:       t,
		OccurredAt: time.Now().UTC(),
	}
}

// NewStatusUpdated builds the event emitted after a status change.
func NewStatusUpdated(t *Task, from, to Status) Event {
	return NewEvent(RoutingKeyStatusUpdated, fmt.Sprintf("Task status updated from %s to %s", from, to), t)
}

// Observer is notified synchronously of registry events. Implementations
// must not call back into the registry from Update.
type Observer interface {
	Update(ctx context.Context, event Event) error
}
