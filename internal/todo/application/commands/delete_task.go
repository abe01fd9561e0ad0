package commands

import (
	"context"
	"log/slog"
)

// DeleteTaskCommand removes one task.
type DeleteTaskCommand struct {
	registry TaskMutator
	taskID   int
	logger   *slog.Logger
}

func NewDeleteTaskCommand(registry TaskMutator, taskID int, logger *slog.Logger) *DeleteTaskCommand {
	return &DeleteTaskCommand{registry: registry, taskID: taskID, logger: orDefault(logger)}
}

func (c *DeleteTaskCommand) CommandName() string {
	return "delete_task"
}

func (c *DeleteTaskCommand) Execute(ctx context.Context) {
	if err := c.registry.DeleteTask(ctx, c.taskID); err != nil {
		logFailure(ctx, c.logger, c.CommandName(), err, "task_id", c.taskID)
	}
}
