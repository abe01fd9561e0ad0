package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/toropyga03/todo/internal/shared/infrastructure/convert"
	"github.com/toropyga03/todo/internal/shared/infrastructure/database"
	"github.com/toropyga03/todo/internal/shared/infrastructure/eventbus"
	"github.com/toropyga03/todo/internal/todo/application/services"
	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/internal/todo/infrastructure/observers"
	"github.com/toropyga03/todo/pkg/config"
	"github.com/toropyga03/todo/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// Store backends; at most one of DB and RedisClient is set.
	Store       task.Store
	DB          database.DB
	RedisClient *redis.Client

	// Event relay
	EventPublisher eventbus.Publisher
	Broker         *observers.BrokerObserver

	Registry *services.TaskRegistry
}

// NewContainer opens the configured store and broker and builds the registry.
// observersFirst are subscribed ahead of the log, metrics and broker observers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, observersFirst ...task.Observer) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
	}

	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openBroker(); err != nil {
		c.Close()
		return nil, err
	}

	chain := append([]task.Observer{}, observersFirst...)
	chain = append(chain,
		observers.NewLogObserver(logger),
		observers.NewMetricsObserver(c.Metrics),
		c.Broker,
	)
	c.Registry = services.NewTaskRegistry(c.Store, logger, services.WithObservers(chain...))

	logger.DebugContext(ctx, "container ready",
		"store", string(cfg.Store),
		"broker", cfg.BrokerEnabled(),
	)
	return c, nil
}

// openBroker connects to RabbitMQ when configured. Outside production an
// unreachable broker falls back to the noop publisher.
func (c *Container) openBroker() error {
	cfg := c.Config
	if !cfg.BrokerEnabled() {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
	} else {
		publisher, err := eventbus.NewRabbitMQPublisher(eventbus.RabbitMQConfig{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
		}, c.Logger)
		switch {
		case err == nil:
			c.EventPublisher = publisher
			c.Health.Register("broker", observability.RabbitMQHealthChecker(func(ctx context.Context) error {
				if publisher.IsClosed() {
					return errors.New("connection closed")
				}
				return nil
			}))
		case cfg.IsProduction():
			return fmt.Errorf("event broker required in production: %w", err)
		default:
			c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		}
	}

	c.Broker = observers.NewBrokerObserver(c.EventPublisher, observers.BreakerConfig{
		FailureThreshold: convert.IntToUint32Clamped(max(cfg.BrokerFailureThreshold, 1)),
		OpenTimeout:      cfg.BrokerOpenTimeout,
	}, c.Metrics, c.Logger)
	return nil
}

// Close releases the broker and store connections.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "driver", c.DB.Driver().String(), "error", err)
		}
	}
}
