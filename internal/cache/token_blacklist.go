package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const blacklistKeyPrefix = "token:blacklist:"

// TokenBlacklist records signed-out bearer tokens until they expire on
// their own
type TokenBlacklist struct {
	client *redis.Client
	logger *zap.Logger
}

// NewTokenBlacklist creates a blacklist. With a nil client sign-out
// becomes a no-op and no token is ever reported blacklisted.
func NewTokenBlacklist(client *redis.Client, logger *zap.Logger) *TokenBlacklist {
	return &TokenBlacklist{client: client, logger: logger}
}

// Add blacklists a token for the given remaining lifetime
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if b.client == nil {
		return nil
	}
	if ttl <= 0 {
		// Already expired, nothing to record
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
}

// Contains reports whether the token has been signed out
func (b *TokenBlacklist) Contains(ctx context.Context, token string) bool {
	if b.client == nil {
		return false
	}

	n, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		b.logger.Debug("token blacklist lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}
