package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/pkg/observability"
)

func execute(a *App, args ...string) error {
	root := NewRootCommand(a)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootCommand_DefaultsToConsole(t *testing.T) {
	a, out := newTestApp(t, testConfig(t), lines("8"))

	require.NoError(t, execute(a))
	assert.Contains(t, out.String(), "== TODO ==")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRootCommand_ConsoleSubcommand(t *testing.T) {
	a, out := newTestApp(t, testConfig(t), lines("8"))

	require.NoError(t, execute(a, "console"))
	assert.Contains(t, out.String(), "Choose a menu item: ")
}

func TestVersionCommand(t *testing.T) {
	a, out := newTestApp(t, testConfig(t), "")

	require.NoError(t, execute(a, "version"))
	assert.Contains(t, out.String(), "todo dev")
	assert.Contains(t, out.String(), "(commit none, built unknown)")
	assert.Nil(t, a.container, "version must not open the store")
}

func TestHealthCommand(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		a, out := newTestApp(t, testConfig(t), "")

		require.NoError(t, execute(a, "health"))
		assert.Contains(t, out.String(), "status: healthy")
		assert.Contains(t, out.String(), "store")
	})

	t.Run("json", func(t *testing.T) {
		a, out := newTestApp(t, testConfig(t), "")

		require.NoError(t, execute(a, "health", "--json"))
		var report observability.OverallHealth
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, observability.HealthStatusHealthy, report.Status)
		assert.Contains(t, report.Checks, "store")
	})

	t.Run("unhealthy store", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.TaskFile = t.TempDir()
		a, out := newTestApp(t, cfg, "")

		err := execute(a, "health")
		assert.ErrorIs(t, err, ErrUnhealthy)
		assert.Contains(t, out.String(), "status: unhealthy")
	})
}
