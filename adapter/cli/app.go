package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	internalApp "github.com/toropyga03/todo/internal/app"
	"github.com/toropyga03/todo/internal/todo/application/services"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/internal/todo/infrastructure/observers"
	"github.com/toropyga03/todo/pkg/config"
)

// ContainerFactory builds the dependency container; tests may swap it.
type ContainerFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger, first ...task.Observer) (*internalApp.Container, error)

// App holds what every command needs. The container is opened on first use so
// commands such as version never touch the store.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer

	// Quiet suppresses the per-event lines written to Out.
	Quiet bool

	newContainer ContainerFactory
	container    *internalApp.Container
}

// NewApp creates an App reading stdin and writing stdout.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Config:       cfg,
		Logger:       logger,
		In:           os.Stdin,
		Out:          os.Stdout,
		newContainer: internalApp.NewContainer,
	}
}

// Container opens the container once and returns it on every later call.
func (a *App) Container(ctx context.Context) (*internalApp.Container, error) {
	if a.container != nil {
		return a.container, nil
	}

	var first []task.Observer
	if !a.Quiet {
		first = append(first, observers.NewTaskLogger(a.Out))
	}
	c, err := a.newContainer(ctx, a.Config, a.Logger, first...)
	if err != nil {
		return nil, err
	}
	a.container = c
	return c, nil
}

// Registry is shorthand for Container(ctx).Registry.
func (a *App) Registry(ctx context.Context) (*services.TaskRegistry, error) {
	c, err := a.Container(ctx)
	if err != nil {
		return nil, err
	}
	return c.Registry, nil
}

// Close releases the container if it was opened.
func (a *App) Close() {
	if a.container != nil {
		a.container.Close()
		a.container = nil
	}
}
