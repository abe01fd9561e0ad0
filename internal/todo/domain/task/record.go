package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord is returned when a persisted record cannot describe a valid task.
var ErrInvalidRecord = errors.New("invalid task record")

// Record is the persisted shape of a task, shared by every store backend.
type Record struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToRecord captures every attribute of t.
func ToRecord(t *Task) Record {
	return Record{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

// Validate reports whether r satisfies the task invariants.
func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id %d is not positive", ErrInvalidRecord, r.ID)
	}
	if err := ValidateTitle(r.Title); err != nil {
		return fmt.Errorf("%w: task %d: %v", ErrInvalidRecord, r.ID, err)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: task %d: unknown status %d", ErrInvalidRecord, r.ID, r.Status)
	}
	created, err := time.Parse(TimestampLayout, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: task %d: created_at %q", ErrInvalidRecord, r.ID, r.CreatedAt)
	}
	updated, err := time.Parse(TimestampLayout, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: task %d: updated_at %q", ErrInvalidRecord, r.ID, r.UpdatedAt)
	}
	if updated.Before(created) {
		return fmt.Errorf("%w: task %d: updated_at precedes created_at", ErrInvalidRecord, r.ID)
	}
	return nil
}

// FromRecord rebuilds the task described by r.
func FromRecord(r Record) (*Task, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return Rehydrate(r.ID, r.Title, r.Description, r.Status, r.CreatedAt, r.UpdatedAt), nil
}

// ToRecords converts a task sequence, preserving order.
func ToRecords(tasks []*Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, ToRecord(t))
	}
	return records
}

// FromRecords converts a record sequence, preserving order. Ids must be unique.
func FromRecords(records []Record) ([]*Task, error) {
	tasks := make([]*Task, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidRecord, r.ID)
		}
		seen[r.ID] = struct{}{}

		t, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
