package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/storefront-auth/internal/logger"
)

// revokedKeyPrefix namespaces deny-list keys in a shared Redis.
const revokedKeyPrefix = "storefront-auth:revoked:"

// redisDenyList is a [DenyList] shared by every instance pointing at the
// same Redis. Each revoked id is a key that Redis expires together with the
// token.
type redisDenyList struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisClient returns a go-redis client for redisURL
// (e.g. "redis://localhost:6379/0") after a successful ping.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return client, nil
}

// NewRedisDenyList wraps client as a [DenyList].
func NewRedisDenyList(client *redis.Client, logger *logger.Logger) DenyList {
	logger.Debug().Str("addr", client.Options().Addr).Msg("creating redis deny-list")
	return &redisDenyList{client: client, now: time.Now}
}

// Revoke implements [DenyList]. SET NX keeps the first expiry if the same
// token is revoked twice.
func (d *redisDenyList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	// Redis expiry has second granularity in SET EX; round up so the key
	// never disappears before the token does.
	ttl = ttl.Truncate(time.Second) + time.Second

	if err := d.client.SetNX(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisDenyList.Revoke").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// IsRevoked implements [DenyList].
func (d *redisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisDenyList.IsRevoked").Msg("error checking deny-list")
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
