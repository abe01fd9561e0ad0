// Package migrations applies the embedded schema for the SQL task store.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// Run executes every .up.sql file for driver in lexical order. Each file holds
// one idempotent statement, so Run is safe to call on every start.
func Run(ctx context.Context, q database.Querier, driver database.Driver) error {
	if !driver.Supported() {
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	files, err := Files(driver)
	if err != nil {
		return err
	}

	for _, file := range files {
		migration, err := migrationsFS.ReadFile(driver.String() + "/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if err := q.Exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// Files lists the up migrations for driver, sorted.
func Files(driver database.Driver) ([]string, error) {
	entries, err := migrationsFS.ReadDir(driver.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}
