package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/internal/todo/application/commands"
)

func newStatusCommand(a *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a task",
		Long: `Change the status of a task and save the list.

The status is a name (pending, in_progress, completed) or its menu number (1-3).

Examples:
  todo task status 1 in_progress
  todo task status 1 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			registry, err := openRegistry(ctx, a)
			if err != nil {
				return err
			}
			t, err := findTask(registry, args[0])
			if err != nil {
				return err
			}

			commands.NewUpdateStatusCommand(registry, t.ID(), status, a.Logger).Execute(ctx)
			if t.Status() != status {
				return fmt.Errorf("status of task %d was not changed", t.ID())
			}
			if err := registry.SaveToStore(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s\n", t.ID(), status)
			return nil
		},
	}
}
