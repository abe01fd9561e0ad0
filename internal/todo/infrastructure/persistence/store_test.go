package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// sampleTasks covers every status and non-ASCII text.
func sampleTasks() []*task.Task {
	now := time.Date(2024, 5, 1, 12, 30, 0, 123456000, time.UTC)

	milk := task.NewTask(1, "Buy milk", "2%", now)
	report := task.NewTask(3, "Отчёт", "написать отчёт ☕", now.Add(time.Minute))
	report.UpdateStatus(task.StatusInProgress, now.Add(2*time.Minute))
	done := task.NewTask(7, "日本語のタスク", "", now.Add(3*time.Minute))
	done.UpdateStatus(task.StatusCompleted, now.Add(4*time.Minute))

	return []*task.Task{milk, report, done}
}

// assertSameTasks compares every persisted attribute, in order.
func assertSameTasks(t *testing.T, want, got []*task.Task) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, task.ToRecord(want[i]), task.ToRecord(got[i]), "task at position %d", i)
	}
}

func roundTrip(t *testing.T, store task.Store) {
	t.Helper()
	ctx := context.Background()
	tasks := sampleTasks()

	require.NoError(t, store.Save(ctx, tasks))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, tasks, loaded)

	// A second save replaces rather than appends.
	require.NoError(t, store.Save(ctx, tasks[:1]))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, tasks[:1], loaded)
}
