package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toropyga03/todo/internal/todo/application/commands"
	"github.com/toropyga03/todo/internal/todo/application/services"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/pkg/observability"
)

const menu = `
== TODO ==
1. Show all tasks
2. Add a task
3. Change task status
4. Delete a task
5. Show tasks by status
6. Save tasks
7. Load tasks
8. Exit
====================`

const statusMenu = `1. pending
2. in_progress
3. completed`

func newConsoleCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConsole(a).Run(cmd.Context())
		},
	}
}

// Console is the interactive numbered menu over the task registry.
type Console struct {
	app      *App
	out      io.Writer
	in       io.Reader
	lines    chan string
	done     chan struct{}
	stopped  chan struct{}
	registry *services.TaskRegistry
}

// NewConsole creates a console reading a.In and writing a.Out.
func NewConsole(a *App) *Console {
	return &Console{app: a, out: a.Out, in: a.In}
}

// Run loads the store and serves the menu until the user exits, input ends
// or ctx is cancelled. Only cancellation is reported as an error.
func (c *Console) Run(ctx context.Context) error {
	container, err := c.app.Container(ctx)
	if err != nil {
		return err
	}
	c.registry = container.Registry
	c.startReader()
	defer c.stopReader()

	fmt.Fprintln(c.out, "Welcome to the Todo application!")
	if err := c.registry.LoadFromStore(ctx); err != nil {
		c.app.Logger.DebugContext(ctx, "initial load", "error", err)
	}

	for {
		fmt.Fprintln(c.out, menu)
		choice, err := c.ask(ctx, "Choose a menu item: ")
		if err != nil {
			return c.finish(ctx, err)
		}

		actionCtx := observability.WithOperation(ctx, "console "+choice)
		switch choice {
		case "1":
			c.showTasks(c.registry.ListAll())
		case "2":
			err = c.addTask(actionCtx)
		case "3":
			err = c.updateStatus(actionCtx)
		case "4":
			err = c.deleteTask(actionCtx)
		case "5":
			err = c.showByStatus(actionCtx)
		case "6":
			c.save(actionCtx)
		case "7":
			c.load(actionCtx)
		case "8":
			fmt.Fprintln(c.out, "Thank you for using the Todo application! Goodbye!")
			return c.finish(ctx, nil)
		default:
			fmt.Fprintln(c.out, "Error: invalid menu item. Please try again.")
		}
		if err != nil {
			return c.finish(ctx, err)
		}
		container.Metrics.Gauge(observability.MetricTasksTotal, float64(len(c.registry.ListAll())))
	}
}

// startReader feeds input lines to c.lines so reads can be abandoned on cancel.
func (c *Console) startReader() {
	c.lines = make(chan string)
	c.done = make(chan struct{})
	c.stopped = make(chan struct{})
	scanner := bufio.NewScanner(c.in)

	go func() {
		defer close(c.stopped)
		defer close(c.lines)
		for scanner.Scan() {
			select {
			case c.lines <- scanner.Text():
			case <-c.done:
				return
			}
		}
	}()
}

// stopReader releases the reader goroutine. Closable inputs other than
// os.Stdin are closed to unblock a pending read; a reader on stdin stays
// parked in Scan until the next line or process exit.
func (c *Console) stopReader() {
	close(c.done)
	if closer, ok := c.in.(io.Closer); ok && c.in != os.Stdin {
		_ = closer.Close()
	}
}

// ask prints prompt and returns the next trimmed line, or io.EOF when input ends.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) finish(ctx context.Context, err error) error {
	if container, cerr := c.app.Container(ctx); cerr == nil {
		for _, counter := range container.Metrics.Counters() {
			c.app.Logger.DebugContext(ctx, "session metric", "metric", counter.Key, "value", counter.Value)
		}
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}

func (c *Console) addTask(ctx context.Context) error {
	title, err := c.ask(ctx, "Enter the task title: ")
	if err != nil {
		return err
	}
	if task.ValidateTitle(title) != nil {
		fmt.Fprintln(c.out, "Error: task title cannot be empty.")
		return nil
	}
	description, err := c.ask(ctx, "Enter the task description: ")
	if err != nil {
		return err
	}

	commands.NewAddTaskCommand(c.registry, title, description, c.app.Logger).Execute(ctx)
	fmt.Fprintln(c.out, "Task added successfully!")
	return nil
}

func (c *Console) updateStatus(ctx context.Context) error {
	id, ok, err := c.askExistingID(ctx, "Enter the task ID: ")
	if err != nil || !ok {
		return err
	}
	status, ok, err := c.askStatus(ctx, "Available statuses:")
	if err != nil || !ok {
		return err
	}

	commands.NewUpdateStatusCommand(c.registry, id, status, c.app.Logger).Execute(ctx)
	fmt.Fprintln(c.out, "Task status updated!")
	return nil
}

func (c *Console) deleteTask(ctx context.Context) error {
	id, ok, err := c.askExistingID(ctx, "Enter the ID of the task to delete: ")
	if err != nil || !ok {
		return err
	}

	commands.NewDeleteTaskCommand(c.registry, id, c.app.Logger).Execute(ctx)
	fmt.Fprintln(c.out, "Task deleted!")
	return nil
}

func (c *Console) showByStatus(ctx context.Context) error {
	status, ok, err := c.askStatus(ctx, "Choose a status to filter by:")
	if err != nil || !ok {
		return err
	}
	c.showTasks(c.registry.ListByStatus(status))
	return nil
}

func (c *Console) save(ctx context.Context) {
	err := observability.TimeOperation(ctx, c.app.Logger, c.metrics(ctx), "save", c.registry.SaveToStore)
	if err != nil {
		fmt.Fprintln(c.out, "Error saving tasks.")
		return
	}
	fmt.Fprintln(c.out, "Tasks saved successfully!")
}

func (c *Console) load(ctx context.Context) {
	err := observability.TimeOperation(ctx, c.app.Logger, c.metrics(ctx), "load", c.registry.LoadFromStore)
	if err != nil {
		fmt.Fprintln(c.out, "Error loading tasks.")
		return
	}
	fmt.Fprintln(c.out, "Tasks loaded successfully!")
}

func (c *Console) metrics(ctx context.Context) observability.Metrics {
	container, err := c.app.Container(ctx)
	if err != nil {
		return observability.NoopMetrics{}
	}
	return container.Metrics
}

// askExistingID reads a task id. ok is false when the input was not a number
// or no such task exists; the user has been told why.
func (c *Console) askExistingID(ctx context.Context, prompt string) (id int, ok bool, err error) {
	raw, err := c.ask(ctx, prompt)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.Atoi(raw)
	if convErr != nil {
		fmt.Fprintln(c.out, "Error: task ID must be a number.")
		return 0, false, nil
	}
	if _, found := c.registry.GetTask(id); !found {
		fmt.Fprintf(c.out, "Error: task with ID %d not found.\n", id)
		return 0, false, nil
	}
	return id, true, nil
}

func (c *Console) askStatus(ctx context.Context, header string) (task.Status, bool, error) {
	fmt.Fprintln(c.out, header)
	fmt.Fprintln(c.out, statusMenu)
	choice, err := c.ask(ctx, "Choose a status (1-3): ")
	if err != nil {
		return 0, false, err
	}
	status, convErr := task.StatusFromChoice(choice)
	if convErr != nil {
		fmt.Fprintln(c.out, "Error: invalid status choice.")
		return 0, false, nil
	}
	return status, true, nil
}

func (c *Console) showTasks(tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "No tasks found.")
		return
	}

	fmt.Fprintln(c.out, "\n=== TASKS ===")
	for _, t := range tasks {
		writeTask(c.out, t)
		fmt.Fprintln(c.out, strings.Repeat("-", 30))
	}
}

// writeTask prints every attribute of t, one per line.
func writeTask(w io.Writer, t *task.Task) {
	fmt.Fprintf(w, "ID: %d\n", t.ID())
	fmt.Fprintf(w, "Title: %s\n", t.Title())
	fmt.Fprintf(w, "Description: %s\n", t.Description())
	fmt.Fprintf(w, "Status: %s\n", t.Status())
	fmt.Fprintf(w, "Created: %s\n", t.CreatedAt())
	fmt.Fprintf(w, "Updated: %s\n", t.UpdatedAt())
}

// WriteTask is writeTask for the task subcommands.
func WriteTask(w io.Writer, t *task.Task) {
	writeTask(w, t)
}
