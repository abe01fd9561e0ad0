package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle   = errors.New("task title cannot be empty")
	ErrTaskNotFound = errors.New("task not found")
)

// TimestampLayout is fixed width so timestamps sort lexicographically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ValidateTitle is applied by callers before a task reaches the registry.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Task represents a unit of work to be done.
type Task struct {
	id          int
	title       string
	description string
	status      Status
	createdAt   string
	updatedAt   string
}

// NewTask creates a pending task. The id is handed out by the registry.
func NewTask(id int, title, description string, now time.Time) *Task {
	ts := FormatTimestamp(now)
	return &Task{
		id:          id,
		title:       title,
		description: description,
		status:      StatusPending,
		createdAt:   ts,
		updatedAt:   ts,
	}
}

// Rehydrate rebuilds a task from persisted state.
func Rehydrate(id int, title, description string, status Status, createdAt, updatedAt string) *Task {
	return &Task{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Task) ID() int             { return t.id }
func (t *Task) Title() string       { return t.title }
func (t *Task) Description() string { return t.description }
func (t *Task) Status() Status      { return t.status }
func (t *Task) CreatedAt() string   { return t.createdAt }
func (t *Task) UpdatedAt() string   { return t.updatedAt }
func (t *Task) IsCompleted() bool   { return t.status == StatusCompleted }

// UpdateStatus sets the status, refreshes updatedAt and returns the prior status.
// updatedAt never moves backwards, even if the clock does.
func (t *Task) UpdateStatus(status Status, now time.Time) Status {
	prior := t.status
	t.status = status
	if ts := FormatTimestamp(now); ts > t.updatedAt {
		t.updatedAt = ts
	}
	return prior
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(id=%d, title='%s', status=%s)", t.id, t.title, t.status)
}
