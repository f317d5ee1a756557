package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"farmgrocery/internal/platform/config"
	"farmgrocery/internal/platform/logger"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Get().Error("redis connection failed", zap.String("address", cfg.Addr), zap.Error(err))
		return nil, err
	}

	logger.Get().Info("redis connection successful", zap.String("address", cfg.Addr))
	return rdb, nil
}
