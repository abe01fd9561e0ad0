package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/pkg/observability"
)

// ErrUnhealthy is returned by the health command when any check fails.
var ErrUnhealthy = errors.New("unhealthy")

func newHealthCommand(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the task store and event broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.Container(ctx)
			if err != nil {
				return err
			}

			health := c.Health.GetOverallHealth(ctx)
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := health.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			} else {
				fmt.Fprintf(out, "status: %s\n", health.Status)
				for _, name := range c.Health.Names() {
					result := health.Checks[name]
					fmt.Fprintf(out, "  %-8s %-9s %s\n", name, result.Status, result.Message)
				}
			}

			if health.Status == observability.HealthStatusUnhealthy {
				return ErrUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
