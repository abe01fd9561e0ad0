package task

import (
	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
)

func newShowCommand(a *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry(cmd.Context(), a)
			if err != nil {
				return err
			}
			t, err := findTask(registry, args[0])
			if err != nil {
				return err
			}
			cli.WriteTask(cmd.OutOrStdout(), t)
			return nil
		},
	}
}
