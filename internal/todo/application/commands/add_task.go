package commands

import (
	"context"
	"log/slog"
)

// AddTaskCommand adds a task with a fixed title and description.
type AddTaskCommand struct {
	registry    TaskMutator
	title       string
	description string
	logger      *slog.Logger
}

// NewAddTaskCommand binds the arguments for a later AddTask call.
func NewAddTaskCommand(registry TaskMutator, title, description string, logger *slog.Logger) *AddTaskCommand {
	return &AddTaskCommand{
		registry:    registry,
		title:       title,
		description: description,
		logger:      orDefault(logger),
	}
}

func (c *AddTaskCommand) CommandName() string {
	return "add_task"
}

func (c *AddTaskCommand) Execute(ctx context.Context) {
	if _, err := c.registry.AddTask(ctx, c.title, c.description); err != nil {
		logFailure(ctx, c.logger, c.CommandName(), err, "title", c.title)
	}
}
