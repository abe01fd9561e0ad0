package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/toropyga03/todo/internal/shared/infrastructure/security"
	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// DefaultFileName is used when no task file is configured.
const DefaultFileName = "tasks.json"

// JSONFileStore keeps the task collection in a single JSON file. Writes are not
// atomic: a crash mid-write can leave a truncated file behind.
type JSONFileStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONFileStore creates a store bound to path.
func NewJSONFileStore(path string, logger *slog.Logger) *JSONFileStore {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = DefaultFileName
	}
	return &JSONFileStore{path: path, logger: logger}
}

// Path returns the file the store reads and writes.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Save writes every task to the file, creating parent directories as needed.
func (s *JSONFileStore) Save(ctx context.Context, tasks []*task.Task) error {
	path, err := security.ValidateFilePath(s.path)
	if err != nil {
		return err
	}

	data, err := encodeTasks(tasks)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.DebugContext(ctx, "tasks written", "path", path, "count", len(tasks))
	return nil
}

// Load reads the file. A missing file yields no tasks and no error; malformed
// content yields no tasks and an error wrapping ErrMalformedData.
func (s *JSONFileStore) Load(ctx context.Context) ([]*task.Task, error) {
	data, err := security.SafeReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.InfoContext(ctx, "task file not found, starting empty", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		s.logger.WarnContext(ctx, "task file is malformed", "path", s.path, "error", err)
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	s.logger.DebugContext(ctx, "tasks read", "path", s.path, "count", len(tasks))
	return tasks, nil
}
