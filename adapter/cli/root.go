package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/pkg/observability"
)

// NewRootCommand builds the todo command tree around a. Running it without a
// subcommand starts the interactive console.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a small task registry",
		Long: `todo keeps a list of tasks with a status each and persists them to a
JSON file, SQLite, PostgreSQL or Redis.

Run without arguments for the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := observability.WithCorrelationID(cmd.Context(), "")
			ctx = observability.WithOperation(ctx, cmd.CommandPath())
			ctx = contextWithStart(ctx, time.Now())
			cmd.SetContext(ctx)
			a.Logger.DebugContext(ctx, "command start")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if started, ok := startFromContext(ctx); ok {
				a.Logger.DebugContext(ctx, "command end",
					observability.DurationKey, time.Since(started).Milliseconds(),
				)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConsole(a).Run(cmd.Context())
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Out)

	root.PersistentFlags().BoolVarP(&a.Quiet, "quiet", "q", false, "do not print task events")

	root.AddCommand(
		newConsoleCommand(a),
		newHealthCommand(a),
		newVersionCommand(),
	)
	return root
}
