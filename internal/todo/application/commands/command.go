// Package commands wraps single registry operations as deferred, argument-bound
// invocations so the console and the cobra subcommands dispatch them the same way.
package commands

import (
	"context"
	"log/slog"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// Command is one registry operation with its arguments already bound.
// Execute captures no result; outcomes surface through registry events and logs.
type Command interface {
	CommandName() string
	Execute(ctx context.Context)
}

// TaskMutator is the part of the registry commands act on.
type TaskMutator interface {
	AddTask(ctx context.Context, title, description string) (*task.Task, error)
	UpdateStatus(ctx context.Context, id int, status task.Status) error
	DeleteTask(ctx context.Context, id int) error
}

func logFailure(ctx context.Context, logger *slog.Logger, name string, err error, attrs ...any) {
	logger.ErrorContext(ctx, "command failed", append([]any{"command", name, "error", err}, attrs...)...)
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
