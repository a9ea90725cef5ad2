package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"ticket-board-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects the shared redis client
func InitRedis(cfg config.RedisConfig, log *zap.Logger) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
	)
	return nil
}

// GetRedis returns the shared client, or nil when redis is unavailable.
// Callers treat a nil client as a cache miss.
func GetRedis() *redis.Client {
	return redisClient
}
