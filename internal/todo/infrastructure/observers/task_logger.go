// Package observers holds the listeners wired to the task registry.
package observers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// TaskLogger prints one line per event for the person at the console.
type TaskLogger struct {
	out io.Writer
}

// NewTaskLogger writes to out, or stdout when out is nil.
func NewTaskLogger(out io.Writer) *TaskLogger {
	if out == nil {
		out = os.Stdout
	}
	return &TaskLogger{out: out}
}

func (l *TaskLogger) Update(ctx context.Context, event task.Event) error {
	_, err := fmt.Fprintln(l.out, FormatEvent(event))
	return err
}

// FormatEvent renders "<local time> <event>" followed by ": <task>" when the
// event concerns a task.
func FormatEvent(event task.Event) string {
	line := event.OccurredAt.Local().Format(consoleTimeLayout) + " " + event.Name
	if event.Task != nil {
		line += ": " + event.Task.String()
	}
	return line
}
