package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/toropyga03/todo/internal/todo/domain/task"
)

// DefaultRedisKey holds the task snapshot when no key is configured.
const DefaultRedisKey = "todo:tasks"

// RedisStore keeps the task collection as one JSON snapshot under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a store writing to key on client.
func NewRedisStore(client *redis.Client, key string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, logger: logger}
}

// Save replaces the snapshot. The key never expires.
func (s *RedisStore) Save(ctx context.Context, tasks []*task.Task) error {
	data, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write redis key %s: %w", s.key, err)
	}
	s.logger.DebugContext(ctx, "tasks written", "key", s.key, "count", len(tasks))
	return nil
}

// Load reads the snapshot. A missing key yields no tasks and no error.
func (s *RedisStore) Load(ctx context.Context) ([]*task.Task, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.InfoContext(ctx, "redis key not found, starting empty", "key", s.key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read redis key %s: %w", s.key, err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	return tasks, nil
}

// Ping checks that the server answers.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
