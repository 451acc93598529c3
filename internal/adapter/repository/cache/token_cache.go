package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

const tokenKeyPrefix = "session:"

// TokenCache mirrors the active JWT per user. Logout deletes the entry, so
// a token outliving its cache entry is no longer accepted.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return c.client.Set(ctx, tokenKeyPrefix+userID, token, ttl).Err()
}

func (c *TokenCache) GetToken(ctx context.Context, userID string) (string, error) {
	token, err := c.client.Get(ctx, tokenKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotAuthenticated
	}
	return token, err
}

func (c *TokenCache) InvalidateToken(ctx context.Context, userID string) error {
	return c.client.Del(ctx, tokenKeyPrefix+userID).Err()
}
