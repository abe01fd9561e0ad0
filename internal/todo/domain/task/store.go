package task

import "context"

// Store persists the whole task collection. The destination is bound when the
// store is constructed. Load on an absent destination returns no tasks and no error.
type Store interface {
	Save(ctx context.Context, tasks []*Task) error
	Load(ctx context.Context) ([]*Task, error)
}
