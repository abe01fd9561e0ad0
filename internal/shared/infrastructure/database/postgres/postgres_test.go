package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
	"github.com/toropyga03/todo/internal/shared/infrastructure/database/postgres"
)

func TestOpen_RequiresURL(t *testing.T) {
	_, err := postgres.Open(context.Background(), database.Config{Driver: database.DriverPostgres})
	assert.ErrorContains(t, err, "database URL is required")
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := postgres.Open(context.Background(), database.Config{URL: "postgres://user@host:notaport/db"})
	assert.ErrorContains(t, err, "failed to parse database URL")
}

func TestDB_Live(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Driver: database.DriverPostgres, URL: url, MaxConns: 2})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, database.DriverPostgres, db.Driver())
	require.NoError(t, db.Ping(ctx))

	var n int
	err = db.Each(ctx, "SELECT ?::int + 1", []any{41}, func(scan database.Scanner) error {
		return scan(&n)
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
