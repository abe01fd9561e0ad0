// Package sqlite is the SQLite backend of database.DB, built on the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
)

// Pragmas applied to every connection. The busy timeout makes a second todo
// process wait for the writer instead of failing.
const pragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

func init() {
	database.Register(database.DriverSQLite, Open)
}

// DB is a SQLite file opened through database/sql.
type DB struct {
	runner
	db *sql.DB
}

// Open opens cfg.SQLitePath, creating the file and its directory if needed.
func Open(ctx context.Context, cfg database.Config) (database.DB, error) {
	if cfg.SQLitePath == "" {
		return nil, errors.New("SQLite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath+"?"+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	return &DB{runner: runner{db}, db: db}, nil
}

func (d *DB) Driver() database.Driver        { return database.DriverSQLite }
func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }
func (d *DB) Close() error                   { return d.db.Close() }

func (d *DB) InTx(ctx context.Context, fn func(q database.Querier) error) error {
	return database.RunTx(ctx, d.begin, fn)
}

func (d *DB) begin(ctx context.Context) (database.Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{runner: runner{tx}, tx: tx}, nil
}

type sqlTx struct {
	runner
	tx *sql.Tx
}

func (t *sqlTx) Commit(context.Context) error   { return t.tx.Commit() }
func (t *sqlTx) Rollback(context.Context) error { return t.tx.Rollback() }

// sqlConn is satisfied by both *sql.DB and *sql.Tx.
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type runner struct {
	conn sqlConn
}

func (r runner) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r runner) Each(ctx context.Context, query string, args []any, row func(scan database.Scanner) error) error {
	rows, err := r.conn.QueryContext(ctx, query, args...)
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
