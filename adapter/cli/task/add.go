package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/internal/todo/application/commands"
	"github.com/toropyga03/todo/internal/todo/domain/task"
)

func newAddCommand(a *cli.App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a pending task and save the list.

Examples:
  todo task add "Buy milk"
  todo task add "Buy milk" --description "2%"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if err := task.ValidateTitle(title); err != nil {
				return err
			}

			ctx := cmd.Context()
			registry, err := openRegistry(ctx, a)
			if err != nil {
				return err
			}

			before := len(registry.ListAll())
			commands.NewAddTaskCommand(registry, title, description, a.Logger).Execute(ctx)
			all := registry.ListAll()
			if len(all) == before {
				return fmt.Errorf("task %q was not added", title)
			}
			if err := registry.SaveToStore(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d\n", all[len(all)-1].ID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}
