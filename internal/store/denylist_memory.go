package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/storefront-auth/internal/logger"
)

// memoryDenyList is a process-local [DenyList] on top of an expirable LRU.
//
// The LRU drops entries after a single fixed ttl, so each entry also stores
// its own expiry and IsRevoked ignores entries past it. ttl should be at least
// the longest token lifetime; otherwise a revoked token may fall out before it
// expires.
//
// The LRU itself is unbounded: size is enforced by Revoke, which refuses new
// entries with ErrStoreUnavailable once the list is full of live ones. A
// revoked token is never evicted to make room for another.
type memoryDenyList struct {
	mu    sync.Mutex
	size  int
	cache *expirable.LRU[string, time.Time]
	now   func() time.Time

	logger *logger.Logger
}

// NewMemoryDenyList returns a [DenyList] holding at most size live entries,
// each kept for ttl. A non-positive size means no limit.
func NewMemoryDenyList(size int, ttl time.Duration, logger *logger.Logger) DenyList {
	logger.Debug().Int("size", size).Dur("ttl", ttl).Msg("creating in-memory deny-list")
	return &memoryDenyList{
		size:   size,
		cache:  expirable.NewLRU[string, time.Time](0, nil, ttl),
		now:    time.Now,
		logger: logger,
	}
}

// Revoke implements [DenyList].
func (d *memoryDenyList) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	now := d.now()
	if !now.Before(expiresAt) {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.size > 0 && !d.cache.Contains(tokenID) && d.cache.Len() >= d.size {
		d.purgeExpired(now)
		if d.cache.Len() >= d.size {
			d.logger.Error().Str("func", "memoryDenyList.Revoke").Int("size", d.size).Msg("deny-list is full")
			return fmt.Errorf("%w: deny-list is full", ErrStoreUnavailable)
		}
	}

	d.cache.Add(tokenID, expiresAt)
	return nil
}

// purgeExpired removes entries whose token has already expired.
func (d *memoryDenyList) purgeExpired(now time.Time) {
	for _, id := range d.cache.Keys() {
		if expiresAt, ok := d.cache.Peek(id); ok && !now.Before(expiresAt) {
			d.cache.Remove(id)
		}
	}
}

// IsRevoked implements [DenyList].
func (d *memoryDenyList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	expiresAt, ok := d.cache.Get(tokenID)
	return ok && d.now().Before(expiresAt), nil
}
