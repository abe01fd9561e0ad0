package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_Supported(t *testing.T) {
	assert.True(t, DriverPostgres.Supported())
	assert.True(t, DriverSQLite.Supported())
	assert.False(t, Driver("mysql").Supported())
	assert.False(t, Driver("").Supported())
	assert.Equal(t, "sqlite", DriverSQLite.String())
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		driver Driver
		query  string
		want   string
	}{
		{
			name:   "sqlite keeps question marks",
			driver: DriverSQLite,
			query:  "INSERT INTO tasks (id, title) VALUES (?, ?)",
			want:   "INSERT INTO tasks (id, title) VALUES (?, ?)",
		},
		{
			name:   "postgres numbers placeholders",
			driver: DriverPostgres,
			query:  "INSERT INTO tasks (id, title) VALUES (?, ?)",
			want:   "INSERT INTO tasks (id, title) VALUES ($1, $2)",
		},
		{
			name:   "placeholder at the end",
			driver: DriverPostgres,
			query:  "SELECT * FROM tasks WHERE id = ?",
			want:   "SELECT * FROM tasks WHERE id = $1",
		},
		{
			name:   "no placeholders",
			driver: DriverPostgres,
			query:  "SELECT 1",
			want:   "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.driver, tt.query))
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Open(t.Context(), Config{Driver: "mysql"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("backend not imported", func(t *testing.T) {
		_, err := Open(t.Context(), Config{Driver: DriverPostgres})
		assert.ErrorContains(t, err, "not linked in")
	})
}

type fakeTx struct {
	committed, rolledBack bool
	commitErr, rbErr      error
}

func (f *fakeTx) Exec(ctx context.Context, query string, args ...any) error { return nil }
func (f *fakeTx) Each(ctx context.Context, query string, args []any, row func(Scanner) error) error {
	return nil
}
func (f *fakeTx) Commit(ctx context.Context) error   { f.committed = true; return f.commitErr }
func (f *fakeTx) Rollback(ctx context.Context) error { f.rolledBack = true; return f.rbErr }

func TestRunTx(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("commits on success", func(t *testing.T) {
		tx := &fakeTx{}
		err := RunTx(ctx, func(context.Context) (Tx, error) { return tx, nil }, func(Querier) error { return nil })

		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		tx := &fakeTx{}
		err := RunTx(ctx, func(context.Context) (Tx, error) { return tx, nil }, func(Querier) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})

	t.Run("keeps both errors when rollback fails", func(t *testing.T) {
		rbErr := errors.New("rollback broke")
		tx := &fakeTx{rbErr: rbErr}
		err := RunTx(ctx, func(context.Context) (Tx, error) { return tx, nil }, func(Querier) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, rbErr)
	})

	t.Run("begin failure", func(t *testing.T) {
		err := RunTx(ctx, func(context.Context) (Tx, error) { return nil, boom }, func(Querier) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("commit failure", func(t *testing.T) {
		tx := &fakeTx{commitErr: boom}
		err := RunTx(ctx, func(context.Context) (Tx, error) { return tx, nil }, func(Querier) error { return nil })
		assert.ErrorIs(t, err, boom)
	})
}
