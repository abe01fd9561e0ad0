package commands

import (
	"context"
	"log/slog"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// UpdateStatusCommand moves one task to a new status.
type UpdateStatusCommand struct {
	registry TaskMutator
	taskID   int
	status   task.Status
	logger   *slog.Logger
}

func NewUpdateStatusCommand(registry TaskMutator, taskID int, status task.Status, logger *slog.Logger) *UpdateStatusCommand {
	return &UpdateStatusCommand{
		registry: registry,
		taskID:   taskID,
		status:   status,
		logger:   orDefault(logger),
	}
}

func (c *UpdateStatusCommand) CommandName() string {
	return "update_status"
}

func (c *UpdateStatusCommand) Execute(ctx context.Context) {
	if err := c.registry.UpdateStatus(ctx, c.taskID, c.status); err != nil {
		logFailure(ctx, c.logger, c.CommandName(), err, "task_id", c.taskID, "status", c.status.String())
	}
}
