package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist stores revoked bearer tokens in Redis.
// Key format: auth:blacklist:<token>, expiring with the token itself.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a TokenBlacklist wrapping the given Redis client.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add records the token as revoked until ttl elapses. Tokens already past
// their expiry need no entry; callers pass a non-positive ttl in that case
// and Add does nothing.
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the token has been revoked.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist check: %w", err)
	}
	return n > 0, nil
}

func (b *TokenBlacklist) key(token string) string {
	return "auth:blacklist:" + token
}
