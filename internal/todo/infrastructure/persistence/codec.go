// Package persistence implements task.Store on a JSON file, an SQL database
// (SQLite or PostgreSQL) and Redis.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// ErrMalformedData is returned when stored content cannot be decoded into tasks.
var ErrMalformedData = errors.New("malformed task data")

// encodeTasks renders tasks as an indented JSON array with non-ASCII text kept verbatim.
func encodeTasks(tasks []*task.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(task.ToRecords(tasks)); err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return buf.Bytes(), nil
}

// storedRecord mirrors task.Record with pointer fields so absent keys are detected.
type storedRecord struct {
	ID          *int         `json:"id"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *task.Status `json:"status"`
	CreatedAt   *string      `json:"created_at"`
	UpdatedAt   *string      `json:"updated_at"`
}

func (r storedRecord) record() (task.Record, error) {
	if r.ID == nil || r.Title == nil || r.Description == nil || r.Status == nil || r.CreatedAt == nil || r.UpdatedAt == nil {
		return task.Record{}, errors.New("record is missing a field")
	}
	return task.Record{
		ID:          *r.ID,
		Title:       *r.Title,
		Description: *r.Description,
		Status:      *r.Status,
		CreatedAt:   *r.CreatedAt,
		UpdatedAt:   *r.UpdatedAt,
	}, nil
}

func decodeTasks(data []byte) ([]*task.Task, error) {
	var stored []storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	records := make([]task.Record, 0, len(stored))
	for i, sr := range stored {
		r, err := sr.record()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedData, i, err)
		}
		records = append(records, r)
	}

	tasks, err := task.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	return tasks, nil
}
