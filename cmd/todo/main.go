package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/toropyga03/todo/adapter/cli"
	"github.com/toropyga03/todo/adapter/cli/task"
	"github.com/toropyga03/todo/pkg/config"
	"github.com/toropyga03/todo/pkg/observability"
)

func main() {
	// Cancelled on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := observability.LoggerFromEnv(observability.LogConfig{
		Level:          observability.LogLevel(cfg.LogLevel),
		Format:         observability.LogFormat(cfg.LogFormat),
		Output:         os.Stderr,
		ServiceVersion: cli.Version,
	})

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a := cli.NewApp(cfg, logger)
	defer a.Close()

	root := cli.NewRootCommand(a)
	root.AddCommand(task.NewCommand(a))
	return root.ExecuteContext(ctx)
}
