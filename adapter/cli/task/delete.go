package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/internal/todo/application/commands"
)

func newDeleteCommand(a *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a task",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			registry, err := openRegistry(ctx, a)
			if err != nil {
				return err
			}
			t, err := findTask(registry, args[0])
			if err != nil {
				return err
			}

			commands.NewDeleteTaskCommand(registry, t.ID(), a.Logger).Execute(ctx)
			if _, still := registry.GetTask(t.ID()); still {
				return fmt.Errorf("task %d was not deleted", t.ID())
			}
			if err := registry.SaveToStore(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", t.ID())
			return nil
		},
	}
}
