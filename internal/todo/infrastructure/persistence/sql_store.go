package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toropyga03/todo/internal/shared/infrastructure/convert"
	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
	"github.com/toropyga03/todo/internal/shared/infrastructure/migrations"
	"github.com/toropyga03/todo/internal/todo/domain/task"
)

const deleteAllTasksSQL = `DELETE FROM tasks`

const insertTaskSQL = `INSERT INTO tasks (id, title, description, status, created_at, updated_at, position)
VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectTasksSQL = `SELECT id, title, description, status, created_at, updated_at
FROM tasks ORDER BY position`

// SQLStore keeps the task collection in a tasks table on SQLite or
// PostgreSQL.
type SQLStore struct {
	db     database.DB
	logger *slog.Logger
}

// NewSQLStore creates a store on db. Call Migrate before first use.
func NewSQLStore(db database.DB, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLStore{db: db, logger: logger}
}

// Migrate creates the schema if needed.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db, s.db.Driver())
}

// Save replaces the table contents with tasks in one transaction.
func (s *SQLStore) Save(ctx context.Context, tasks []*task.Task) error {
	err := s.db.InTx(ctx, func(q database.Querier) error {
		if err := q.Exec(ctx, deleteAllTasksSQL); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}
		for position, r := range task.ToRecords(tasks) {
			if err := q.Exec(ctx, insertTaskSQL,
				r.ID, r.Title, r.Description, r.Status.String(), r.CreatedAt, r.UpdatedAt, position,
			); err != nil {
				return fmt.Errorf("failed to insert task %d: %w", r.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "tasks written", "driver", s.db.Driver().String(), "count", len(tasks))
	return nil
}

// Load reads every task in saved order.
func (s *SQLStore) Load(ctx context.Context) ([]*task.Task, error) {
	var records []task.Record
	err := s.db.Each(ctx, selectTasksSQL, nil, func(scan database.Scanner) error {
		var (
			id     int64
			r      task.Record
			status string
			err    error
		)
		if err = scan(&id, &r.Title, &r.Description, &status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan task: %w", err)
		}
		if r.Status, err = task.ParseStatus(status); err != nil {
			return fmt.Errorf("%w: task %d: %v", ErrMalformedData, id, err)
		}
		if r.ID, err = convert.Int64ToInt(id); err != nil {
			return fmt.Errorf("%w: task id %d", ErrMalformedData, id)
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	tasks, err := task.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	return tasks, nil
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
