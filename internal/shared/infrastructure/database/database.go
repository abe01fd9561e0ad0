package database

import (
	"context"
	"errors"
	"fmt"
)

// Scanner copies the current row into dest.
type Scanner func(dest ...any) error

// Querier runs statements either directly or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) error
	// Each calls row once per result row, stopping at the first error.
	Each(ctx context.Context, query string, args []any, row func(scan Scanner) error) error
}

// DB is an open database.
type DB interface {
	Querier
	// InTx runs fn in a transaction that commits when fn returns nil.
	InTx(ctx context.Context, fn func(q Querier) error) error
	Ping(ctx context.Context) error
	Close() error
	Driver() Driver
}

// Tx is a transaction as the backends see it.
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Config selects and configures a backend.
type Config struct {
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string
	// MaxConns caps the PostgreSQL pool size.
	MaxConns int

	// SQLitePath is the database file; its directory is created on open.
	SQLitePath string
}

// Opener opens one backend.
type Opener func(ctx context.Context, cfg Config) (DB, error)

var openers = map[Driver]Opener{}

// Register is called from the init of each backend package.
func Register(d Driver, open Opener) {
	openers[d] = open
}

// Open connects to the backend named by cfg.Driver. Backends register
// themselves on import, so callers blank-import the ones they need.
func Open(ctx context.Context, cfg Config) (DB, error) {
	if !cfg.Driver.Supported() {
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
	open, ok := openers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("database driver %s is not linked in", cfg.Driver)
	}
	return open(ctx, cfg)
}

// RunTx begins a transaction, runs fn in it and commits. The transaction is
// rolled back when fn fails; a rollback failure is joined to fn's error.
func RunTx(ctx context.Context, begin func(ctx context.Context) (Tx, error), fn func(q Querier) error) error {
	tx, err := begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
