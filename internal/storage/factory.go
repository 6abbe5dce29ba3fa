package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"resto-dashboard/pkg/config"
	"resto-dashboard/pkg/database/postgresql"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// New создаёт хранилище по имени драйвера из конфига.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case DriverMemory:
		logger.Warn("Хранилище сессий в памяти: данные пропадут при перезапуске")
		return NewMemory(), nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("не удалось подключиться к Redis (%s): %w", cfg.Redis.Address, err)
		}
		return NewRedis(client, cfg.Redis.Prefix, cfg.Storage.TTL), nil

	case DriverPostgres:
		if err := postgresql.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return nil, err
		}
		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool, cfg.Storage.TTL), nil
	}

	return nil, fmt.Errorf("неизвестный драйвер хранилища: %q", cfg.Storage.Driver)
}
