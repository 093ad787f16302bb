package ports

import (
	"context"
	"time"
)

// TokenBlacklist is an expiring key-value store of revoked bearer tokens,
// keyed by the token itself. Entries are added with a TTL equal to the
// token's remaining validity, so the set never accumulates stale tokens.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
