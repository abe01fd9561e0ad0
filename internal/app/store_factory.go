package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
	_ "github.com/toropyga03/todo/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/toropyga03/todo/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/toropyga03/todo/internal/todo/infrastructure/persistence"
	"github.com/toropyga03/todo/pkg/config"
	"github.com/toropyga03/todo/pkg/observability"
)

// openStore builds the task store selected by TODO_STORE and registers its
// health check.
func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config

	switch cfg.Store {
	case config.StoreJSON, "":
		store := persistence.NewJSONFileStore(cfg.TaskFile, c.Logger)
		c.Store = store
		c.Health.Register("store", observability.FileStoreHealthChecker(store.Path()))
		return nil

	case config.StoreSQLite, config.StorePostgres:
		store, err := c.openSQLStore(ctx)
		if err != nil {
			return err
		}
		c.Store = store
		c.Health.Register("store", observability.DatabaseHealthChecker(store.Ping))
		return nil

	case config.StoreRedis:
		store, err := c.openRedisStore(ctx)
		if err != nil {
			return err
		}
		c.Store = store
		c.Health.Register("store", observability.RedisHealthChecker(store.Ping))
		return nil

	default:
		return fmt.Errorf("unsupported store: %s", cfg.Store)
	}
}

func (c *Container) openSQLStore(ctx context.Context) (*persistence.SQLStore, error) {
	cfg := c.Config
	dbCfg := database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: cfg.SQLitePath,
	}
	if cfg.Store == config.StorePostgres {
		dbCfg = database.Config{
			Driver:   database.DriverPostgres,
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DatabaseMaxConns,
		}
	}

	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dbCfg.Driver, err)
	}
	c.DB = db

	store := persistence.NewSQLStore(db, c.Logger)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	c.Logger.DebugContext(ctx, "connected to database", "driver", db.Driver().String())
	return store, nil
}

func (c *Container) openRedisStore(ctx context.Context) (*persistence.RedisStore, error) {
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	c.RedisClient = redis.NewClient(opt)

	store := persistence.NewRedisStore(c.RedisClient, c.Config.RedisKey, c.Logger)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	c.Logger.DebugContext(ctx, "connected to Redis", "key", c.Config.RedisKey)
	return store, nil
}
