package observers

import (
	"context"
	"log/slog"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// LogObserver writes every event to the structured log.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger.With("component", "events")}
}

func (o *LogObserver) Update(ctx context.Context, event task.Event) error {
	attrs := []any{
		"event_id", event.ID.String(),
		"kind", event.Kind,
	}
	if event.Task != nil {
		attrs = append(attrs,
			"task_id", event.Task.ID(),
			"status", event.Task.Status().String(),
		)
	}

	level := slog.LevelInfo
	if event.Kind == task.RoutingKeySaveFailed || event.Kind == task.RoutingKeyLoadFailed {
		level = slog.LevelWarn
	}
	o.logger.Log(ctx, level, event.Name, attrs...)
	return nil
}
