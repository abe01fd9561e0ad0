package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/internal/todo/domain/task"
)

func newListCommand(a *cli.App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tasks",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			registry, err := openRegistry(ctx, a)
			if err != nil {
				return err
			}

			tasks := registry.ListAll()
			if status != "" {
				s, err := parseStatus(status)
				if err != nil {
					return err
				}
				tasks = registry.ListByStatus(s)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}
			for _, t := range tasks {
				cli.WriteTask(out, t)
				fmt.Fprintln(out, strings.Repeat("-", 30))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "only tasks in this status ("+statusNames()+")")
	return cmd
}

func statusNames() string {
	names := make([]string, 0, len(task.Statuses()))
	for _, s := range task.Statuses() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
