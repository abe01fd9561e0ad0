package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/internal/todo/application/commands"
	"github.com/toropyga03/todo/internal/todo/application/services"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/internal/todo/infrastructure/persistence"
)

func TestCommandsDriveRegistry(t *testing.T) {
	ctx := context.Background()
	registry := services.NewTaskRegistry(persistence.NewJSONFileStore(t.TempDir()+"/tasks.json", nil), nil)

	for _, cmd := range []commands.Command{
		commands.NewAddTaskCommand(registry, "Buy milk", "2%", nil),
		commands.NewAddTaskCommand(registry, "Write report", "", nil),
		commands.NewUpdateStatusCommand(registry, 1, task.StatusInProgress, nil),
		commands.NewDeleteTaskCommand(registry, 2, nil),
		commands.NewDeleteTaskCommand(registry, 99, nil),
	} {
		cmd.Execute(ctx)
	}

	all := registry.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, "Buy milk", all[0].Title())
	assert.Equal(t, task.StatusInProgress, all[0].Status())
}
