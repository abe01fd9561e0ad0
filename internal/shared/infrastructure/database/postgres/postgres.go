// Package postgres is the PostgreSQL backend of database.DB on a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
)

const maxPoolSize = 1 << 10

func init() {
	database.Register(database.DriverPostgres, Open)
}

// DB is a pgx connection pool.
type DB struct {
	runner
	pool *pgxpool.Pool
}

// Open creates a pool for cfg.URL and checks it with a ping.
func Open(ctx context.Context, cfg database.Config) (database.DB, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is required for PostgreSQL")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(min(cfg.MaxConns, maxPoolSize))
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{runner: runner{pool}, pool: pool}, nil
}

func (d *DB) Driver() database.Driver        { return database.DriverPostgres }
func (d *DB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

func (d *DB) InTx(ctx context.Context, fn func(q database.Querier) error) error {
	return database.RunTx(ctx, d.begin, fn)
}

func (d *DB) begin(ctx context.Context) (database.Tx, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{runner: runner{tx}, tx: tx}, nil
}

type pgTx struct {
	runner
	tx pgx.Tx
}

func (t *pgTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *pgTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// pgConn is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type runner struct {
	conn pgConn
}

func (r runner) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.conn.Exec(ctx, database.Rebind(database.DriverPostgres, query), args...)
	return err
}

func (r runner) Each(ctx context.Context, query string, args []any, row func(scan database.Scanner) error) error {
	rows, err := r.conn.Query(ctx, database.Rebind(database.DriverPostgres, query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := row(rows.Scan); err != nil {
			return err
		}
	}
	return rows.Err()
}
