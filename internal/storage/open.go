package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
)

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (KV, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "", "sqlite":
		logger.Debug("opening sqlite storage", zap.String("path", cfg.Path))
		return NewSQLite(cfg.Path, cfg.Origin)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("STORAGE_DSN is required for the postgres driver")
		}
		if err := RunMigrations(cfg.DSN, logger); err != nil {
			return nil, err
		}
		pool, err := NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewPostgres(pool, cfg.Origin), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPwd,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return NewRedis(client, cfg.Origin), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
