package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"msgboard/internal/config"
	"msgboard/internal/db"
	"msgboard/internal/logger"
	"msgboard/internal/redis"
	"msgboard/internal/store"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	database := &db.DB{DB: sqlDB}

	if err := db.Sync(ctx, database, cfg.ResetDatabase); err != nil {
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"reset": cfg.ResetDatabase,
	})

	// Seeding is not idempotent; it only runs when the boot also reset the
	// schema (disposable databases) or when forced explicitly.
	if cfg.SeedDatabase {
		if err := store.New(database).Seed(ctx); err != nil {
			return nil, err
		}
		logger.Info("seed data inserted", nil)
	}

	infra := &Infra{DB: database}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	}

	return infra, nil
}
