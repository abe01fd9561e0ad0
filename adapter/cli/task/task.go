package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/internal/todo/application/services"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/internal/todo/infrastructure/persistence"
)

// NewCommand returns the task command group.
func NewCommand(a *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Add, list, show, update and delete tasks without the interactive menu.

Every command loads the store first and writes it back after a change.`,
	}

	cmd.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newStatusCommand(a),
		newDeleteCommand(a),
	)
	return cmd
}

// openRegistry returns the registry with the store contents loaded. An empty or
// missing store is a fresh start; unreadable data is refused so a later save
// cannot overwrite it.
func openRegistry(ctx context.Context, a *cli.App) (*services.TaskRegistry, error) {
	registry, err := a.Registry(ctx)
	if err != nil {
		return nil, err
	}

	err = registry.LoadFromStore(ctx)
	switch {
	case err == nil:
	case errors.Is(err, persistence.ErrMalformedData):
		return nil, fmt.Errorf("refusing to modify tasks: %w", err)
	case errors.Is(err, services.ErrNothingLoaded):
		a.Logger.DebugContext(ctx, "starting with an empty task list", "error", err)
	default:
		return nil, err
	}
	return registry, nil
}

// findTask parses raw as a task id and looks it up.
func findTask(registry *services.TaskRegistry, raw string) (*task.Task, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("task ID must be a number: %q", raw)
	}
	t, ok := registry.GetTask(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return t, nil
}

// parseStatus accepts a status name or its menu number.
func parseStatus(raw string) (task.Status, error) {
	if status, err := task.ParseStatus(raw); err == nil {
		return status, nil
	}
	return task.StatusFromChoice(raw)
}
