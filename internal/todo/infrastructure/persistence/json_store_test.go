package persistence_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/internal/todo/infrastructure/persistence"
)

func TestJSONFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.json")
	roundTrip(t, persistence.NewJSONFileStore(path, nil))
}

func TestJSONFileStore_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := persistence.NewJSONFileStore(path, nil)

	require.NoError(t, store.Save(context.Background(), sampleTasks()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "[\n    {\n        \"id\": 1,"))
	assert.Contains(t, content, `"title": "Отчёт"`)
	assert.Contains(t, content, `"status": "in_progress"`)
	assert.Contains(t, content, `"created_at": "2024-05-01T12:30:00.123456Z"`)
	assert.NotContains(t, content, `\u`)
}

func TestJSONFileStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty without error", func(t *testing.T) {
		store := persistence.NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"), nil)

		tasks, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

		tasks, err := persistence.NewJSONFileStore(path, nil).Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, tasks)
	})

	const stamp = "2024-05-01T12:30:00.123456Z"
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json"},
		{name: "truncated", content: `[{"id": 1, "title": "Buy`},
		{name: "object instead of array", content: `{"id": 1}`},
		{name: "unknown status", content: `[` + record(1, "x", "archived", stamp, stamp) + `]`},
		{name: "empty record", content: `[{}]`},
		{name: "missing field", content: `[{"id": 1, "title": "x", "status": "pending", "created_at": "` + stamp + `", "updated_at": "` + stamp + `"}]`},
		{name: "zero id", content: `[` + record(0, "x", "pending", stamp, stamp) + `]`},
		{name: "negative id", content: `[` + record(-5, "x", "pending", stamp, stamp) + `]`},
		{name: "empty title", content: `[` + record(1, "", "pending", stamp, stamp) + `]`},
		{name: "duplicate id", content: `[` + record(1, "a", "pending", stamp, stamp) + `, ` + record(1, "b", "pending", stamp, stamp) + `]`},
		{name: "unparseable timestamp", content: `[` + record(1, "x", "pending", "z", "a") + `]`},
		{name: "updated before created", content: `[` + record(1, "x", "pending", stamp, "2024-04-30T00:00:00.000000Z") + `]`},
	}
	for _, tt := range tests {
		t.Run("malformed: "+tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			tasks, err := persistence.NewJSONFileStore(path, nil).Load(ctx)
			assert.ErrorIs(t, err, persistence.ErrMalformedData)
			assert.Empty(t, tasks)
		})
	}
}

func TestJSONFileStore_Defaults(t *testing.T) {
	store := persistence.NewJSONFileStore("", nil)
	assert.Equal(t, persistence.DefaultFileName, store.Path())
}

func TestJSONFileStore_SaveRejectsInvalidPath(t *testing.T) {
	store := persistence.NewJSONFileStore("tasks;.json", nil)
	assert.Error(t, store.Save(context.Background(), sampleTasks()))
}

func record(id int, title, status, createdAt, updatedAt string) string {
	return fmt.Sprintf(`{"id": %d, "title": %q, "description": "", "status": %q, "created_at": %q, "updated_at": %q}`,
		id, title, status, createdAt, updatedAt)
}
