// Package services holds the task registry, the authoritative in-memory
// collection of tasks.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toropyga03/todo/internal/shared/infrastructure/eventbus"
	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// ErrNothingLoaded is returned by LoadFromStore when the store failed or held
// no tasks. The two cases are deliberately not distinguished.
var ErrNothingLoaded = errors.New("no tasks loaded from store")

// Option configures a TaskRegistry.
type Option func(*TaskRegistry)

// WithClock overrides the time source used for task timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *TaskRegistry) {
		r.now = now
	}
}

// WithObservers subscribes observers in the given order.
func WithObservers(observers ...task.Observer) Option {
	return func(r *TaskRegistry) {
		for _, o := range observers {
			r.bus.Subscribe(o)
		}
	}
}

// TaskRegistry owns the task collection, assigns ids, mutates tasks and drives
// persistence and notifications. It is single-threaded.
type TaskRegistry struct {
	tasks  []*task.Task
	nextID int
	store  task.Store
	bus    *eventbus.Bus[task.Event]
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskRegistry creates an empty registry backed by store.
func NewTaskRegistry(store task.Store, logger *slog.Logger, opts ...Option) *TaskRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &TaskRegistry{
		nextID: 1,
		store:  store,
		bus:    eventbus.NewBus[task.Event](logger),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers an observer for every subsequent event.
func (r *TaskRegistry) Subscribe(o task.Observer) {
	r.bus.Subscribe(o)
}

// Unsubscribe removes an observer; unknown observers are ignored.
func (r *TaskRegistry) Unsubscribe(o task.Observer) {
	r.bus.Unsubscribe(o)
}

// AddTask appends a new pending task. Title validation is the caller's job.
// The returned error only reports a failing observer; the task is added regardless.
func (r *TaskRegistry) AddTask(ctx context.Context, title, description string) (*task.Task, error) {
	t := task.NewTask(r.nextID, title, description, r.now())
	r.nextID++
	r.tasks = append(r.tasks, t)

	r.logger.DebugContext(ctx, "task added", "task_id", t.ID())
	return t, r.publish(ctx, task.NewEvent(task.RoutingKeyCreated, task.EventCreated, t))
}

// GetTask looks a task up by id.
func (r *TaskRegistry) GetTask(id int) (*task.Task, bool) {
	_, t := r.find(id)
	return t, t != nil
}

// UpdateStatus changes the status of task id.
func (r *TaskRegistry) UpdateStatus(ctx context.Context, id int, status task.Status) error {
	_, t := r.find(id)
	if t == nil {
		r.logger.WarnContext(ctx, "status update for unknown task", "task_id", id)
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}

	prior := t.UpdateStatus(status, r.now())
	r.logger.DebugContext(ctx, "task status updated",
		"task_id", id,
		"from", prior.String(),
		"to", status.String(),
	)
	return r.publish(ctx, task.NewStatusUpdated(t, prior, status))
}

// DeleteTask removes task id.
func (r *TaskRegistry) DeleteTask(ctx context.Context, id int) error {
	i, t := r.find(id)
	if t == nil {
		r.logger.WarnContext(ctx, "delete of unknown task", "task_id", id)
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.logger.DebugContext(ctx, "task deleted", "task_id", id)
	return r.publish(ctx, task.NewEvent(task.RoutingKeyDeleted, task.EventDeleted, t))
}

// ListAll returns the tasks in creation order. The slice is a snapshot.
func (r *TaskRegistry) ListAll() []*task.Task {
	return append([]*task.Task(nil), r.tasks...)
}

// ListByStatus returns the tasks with the given status in creation order.
func (r *TaskRegistry) ListByStatus(status task.Status) []*task.Task {
	var matched []*task.Task
	for _, t := range r.ListAll() {
		if t.Status() == status {
			matched = append(matched, t)
		}
	}
	return matched
}

// SaveToStore writes the whole collection to the store.
func (r *TaskRegistry) SaveToStore(ctx context.Context) error {
	if err := r.store.Save(ctx, r.tasks); err != nil {
		r.logger.ErrorContext(ctx, "failed to save tasks", "error", err)
		return errors.Join(
			fmt.Errorf("failed to save tasks: %w", err),
			r.publish(ctx, task.NewEvent(task.RoutingKeySaveFailed, task.EventSaveFailed, nil)),
		)
	}

	r.logger.DebugContext(ctx, "tasks saved", "count", len(r.tasks))
	return r.publish(ctx, task.NewEvent(task.RoutingKeySaved, task.EventSaved, nil))
}

// LoadFromStore replaces the collection with the stored tasks. Current state is
// kept when the store fails or returns nothing; both report ErrNothingLoaded.
func (r *TaskRegistry) LoadFromStore(ctx context.Context) error {
	loaded, err := r.store.Load(ctx)
	if err != nil || len(loaded) == 0 {
		cause := ErrNothingLoaded
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to load tasks", "error", err)
			cause = fmt.Errorf("%w: %w", ErrNothingLoaded, err)
		} else {
			r.logger.InfoContext(ctx, "store holds no tasks")
		}
		return errors.Join(cause,
			r.publish(ctx, task.NewEvent(task.RoutingKeyLoadFailed, task.EventLoadFailed, nil)),
		)
	}

	r.tasks = loaded
	r.nextID = 1
	for _, t := range loaded {
		if t.ID() >= r.nextID {
			r.nextID = t.ID() + 1
		}
	}

	r.logger.DebugContext(ctx, "tasks loaded", "count", len(loaded), "next_id", r.nextID)
	return r.publish(ctx, task.NewEvent(task.RoutingKeyLoaded, task.EventLoaded, nil))
}

func (r *TaskRegistry) find(id int) (int, *task.Task) {
	for i, t := range r.tasks {
		if t.ID() == id {
			return i, t
		}
	}
	return -1, nil
}

func (r *TaskRegistry) publish(ctx context.Context, event task.Event) error {
	if err := r.bus.Publish(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "event delivery aborted",
			"event", event.Name,
			"kind", event.Kind,
			"error", err,
		)
		return err
	}
	return nil
}
