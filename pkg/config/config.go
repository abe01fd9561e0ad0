package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreKind selects the task store backend.
type StoreKind string

const (
	StoreJSON     StoreKind = "json"
	StoreSQLite   StoreKind = "sqlite"
	StorePostgres StoreKind = "postgres"
	StoreRedis    StoreKind = "redis"
)

// ErrInvalidConfig is wrapped by every validation failure from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Store
	Store      StoreKind
	TaskFile   string
	SQLitePath string

	// Database
	DatabaseURL      string
	DatabaseMaxConns int

	// Redis
	RedisURL string
	RedisKey string

	// RabbitMQ; empty disables the event relay
	RabbitMQURL            string
	RabbitMQExchange       string
	BrokerFailureThreshold int
	BrokerOpenTimeout      time.Duration
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "warn")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		Store:      StoreKind(strings.ToLower(getEnv("TODO_STORE", string(StoreJSON)))),
		TaskFile:   getEnv("TODO_FILE", "tasks.json"),
		SQLitePath: getEnv("SQLITE_PATH", defaultSQLitePath()),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 5),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKey: getEnv("REDIS_KEY", "todo:tasks"),

		RabbitMQURL:            getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange:       getEnv("RABBITMQ_EXCHANGE", "todo.task.events"),
		BrokerFailureThreshold: getIntEnv("BROKER_FAILURE_THRESHOLD", 3),
		BrokerOpenTimeout:      getDurationEnv("BROKER_OPEN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON:
		if strings.TrimSpace(c.TaskFile) == "" {
			return fmt.Errorf("%w: TODO_FILE is empty", ErrInvalidConfig)
		}
	case StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres store", ErrInvalidConfig)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: REDIS_URL is required for the redis store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown TODO_STORE %q (want json, sqlite, postgres or redis)", ErrInvalidConfig, c.Store)
	}
	if c.BrokerFailureThreshold < 1 {
		return fmt.Errorf("%w: BROKER_FAILURE_THRESHOLD must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// BrokerEnabled reports whether events are relayed to RabbitMQ.
func (c *Config) BrokerEnabled() bool {
	return c.RabbitMQURL != ""
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".todo", "tasks.db")
	}
	return filepath.Join(home, ".todo", "tasks.db")
}
