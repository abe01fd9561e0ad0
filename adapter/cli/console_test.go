package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/pkg/config"
	"github.com/toropyga03/todo/pkg/observability"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:                 "test",
		Store:                  config.StoreJSON,
		TaskFile:               filepath.Join(t.TempDir(), "tasks.json"),
		BrokerFailureThreshold: 3,
		BrokerOpenTimeout:      time.Second,
	}
}

func newTestApp(t *testing.T, cfg *config.Config, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.In = strings.NewReader(input)
	a.Out = &out
	t.Cleanup(a.Close)
	return a, &out
}

func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

func TestConsole_Session(t *testing.T) {
	cfg := testConfig(t)
	a, out := newTestApp(t, cfg, lines(
		"2", "Buy milk", "2%", // add
		"3", "1", "2", // in progress
		"5", "2", // list in progress
		"6", // save
		"8",
	))

	require.NoError(t, NewConsole(a).Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Welcome to the Todo application!")
	assert.Contains(t, text, "Task created: Task(id=1, title='Buy milk', status=pending)")
	assert.Contains(t, text, "Task added successfully!")
	assert.Contains(t, text, "Task status updated from pending to in_progress")
	assert.Contains(t, text, "Status: in_progress")
	assert.Contains(t, text, "Description: 2%")
	assert.Contains(t, text, "Tasks saved successfully!")
	assert.Contains(t, text, "Thank you for using the Todo application! Goodbye!")

	data, err := os.ReadFile(cfg.TaskFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Buy milk"`)
	assert.Contains(t, string(data), `"status": "in_progress"`)

	c, err := a.Container(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1), c.Metrics.GetGauge(observability.MetricTasksTotal))
	assert.Len(t, c.Metrics.GetTimings(observability.MetricOperationDuration, observability.T("operation", "save")), 1)
}

func TestConsole_LoadsAtStartup(t *testing.T) {
	cfg := testConfig(t)
	first, _ := newTestApp(t, cfg, lines("2", "Persisted", "", "6", "8"))
	require.NoError(t, NewConsole(first).Run(context.Background()))

	second, out := newTestApp(t, cfg, lines("1", "8"))
	require.NoError(t, NewConsole(second).Run(context.Background()))

	assert.Contains(t, out.String(), "Tasks loaded from store")
	assert.Contains(t, out.String(), "Title: Persisted")
}

func TestConsole_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty title", input: lines("2", "   ", "8"), want: "Error: task title cannot be empty."},
		{name: "id not a number", input: lines("3", "abc", "8"), want: "Error: task ID must be a number."},
		{name: "unknown id on update", input: lines("3", "7", "8"), want: "Error: task with ID 7 not found."},
		{name: "unknown id on delete", input: lines("4", "7", "8"), want: "Error: task with ID 7 not found."},
		{name: "invalid status", input: lines("2", "t", "", "3", "1", "4", "8"), want: "Error: invalid status choice."},
		{name: "invalid filter", input: lines("5", "0", "8"), want: "Error: invalid status choice."},
		{name: "unknown menu item", input: lines("9", "8"), want: "Error: invalid menu item."},
		{name: "empty list", input: lines("1", "8"), want: "No tasks found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := newTestApp(t, testConfig(t), tt.input)

			require.NoError(t, NewConsole(a).Run(context.Background()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestConsole_RejectedInputLeavesTasksAlone(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), lines("2", "keep", "", "4", "x", "3", "9", "8"))

	require.NoError(t, NewConsole(a).Run(context.Background()))

	registry, err := a.Registry(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.ListAll(), 1)
	assert.Equal(t, "keep", registry.ListAll()[0].Title())
	assert.Equal(t, "pending", registry.ListAll()[0].Status().String())
}

func TestConsole_DeleteTask(t *testing.T) {
	a, out := newTestApp(t, testConfig(t), lines("2", "a", "", "2", "b", "", "4", "1", "1", "8"))

	require.NoError(t, NewConsole(a).Run(context.Background()))

	assert.Contains(t, out.String(), "Task deleted: Task(id=1, title='a', status=pending)")
	assert.Contains(t, out.String(), "Task deleted!")
	registry, err := a.Registry(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.ListAll(), 1)
	assert.Equal(t, 2, registry.ListAll()[0].ID())
}

func TestConsole_EndOfInput(t *testing.T) {
	a, out := newTestApp(t, testConfig(t), "1\n")

	require.NoError(t, NewConsole(a).Run(context.Background()))
	assert.NotContains(t, out.String(), "Goodbye")
}

func TestConsole_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	a, _ := newTestApp(t, testConfig(t), "")
	a.In = pr

	ctx, cancel := context.WithCancel(context.Background())
	console := NewConsole(a)
	done := make(chan error, 1)
	go func() { done <- console.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop after cancel")
	}

	select {
	case <-console.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("input reader still blocked after the console stopped")
	}
}

func TestConsole_SaveFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.TaskFile = t.TempDir()
	a, out := newTestApp(t, cfg, lines("6", "8"))

	require.NoError(t, NewConsole(a).Run(context.Background()))
	assert.Contains(t, out.String(), "Error saving tasks.")
	assert.Contains(t, out.String(), "Error saving tasks to store")
}
