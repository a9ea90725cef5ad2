package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-board-api/internal/dto"
)

const (
	boardKeyPrefix  = "board:"
	defaultBoardTTL = 5 * time.Minute
)

// BoardCache stores the assembled board per user. Moves invalidate the
// entry; the next read, or the refresh behind a board broadcast,
// rebuilds it from the database and recaches it.
type BoardCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewBoardCache creates a board cache. A nil client disables caching;
// every Get becomes a miss and writes are dropped.
func NewBoardCache(client *redis.Client, logger *zap.Logger) *BoardCache {
	return &BoardCache{
		client: client,
		logger: logger,
		ttl:    defaultBoardTTL,
	}
}

// Get returns the cached board for the user, if present
func (c *BoardCache) Get(ctx context.Context, userID uuid.UUID) (*dto.BoardResponse, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, boardKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("board cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var board dto.BoardResponse
	if err := json.Unmarshal(data, &board); err != nil {
		c.logger.Warn("board cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return &board, true
}

// Set stores the board for the user. Failures are logged and swallowed.
func (c *BoardCache) Set(ctx context.Context, userID uuid.UUID, board *dto.BoardResponse) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(board)
	if err != nil {
		c.logger.Warn("failed to marshal board for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, boardKeyPrefix+userID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Debug("board cache write failed", zap.Error(err))
	}
}

// Invalidate drops the user's cached board so the next read refetches
// authoritative state
func (c *BoardCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, boardKeyPrefix+userID.String()).Err(); err != nil {
		c.logger.Debug("board cache invalidation failed", zap.Error(err))
	}
}
