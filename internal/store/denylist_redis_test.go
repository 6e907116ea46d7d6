package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/storefront-auth/internal/logger"
)

func newTestRedisDenyList(t *testing.T) (*redisDenyList, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDenyList(client, logger.Nop()).(*redisDenyList), mr
}

func TestRedisDenyList_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	dl, mr := newTestRedisDenyList(t)
	now := time.Now()
	dl.now = func() time.Time { return now }

	require.NoError(t, dl.Revoke(ctx, "jti-1", now.Add(10*time.Minute)))

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = dl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl := mr.TTL(revokedKeyPrefix + "jti-1")
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute+time.Second)

	// the key disappears together with the token
	mr.FastForward(11 * time.Minute)
	revoked, err = dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenyList_SecondRevokeKeepsFirstExpiry(t *testing.T) {
	ctx := context.Background()
	dl, mr := newTestRedisDenyList(t)
	now := time.Now()
	dl.now = func() time.Time { return now }

	require.NoError(t, dl.Revoke(ctx, "jti", now.Add(time.Minute)))
	require.NoError(t, dl.Revoke(ctx, "jti", now.Add(time.Hour)))

	assert.LessOrEqual(t, mr.TTL(revokedKeyPrefix+"jti"), time.Minute+time.Second)
}

func TestRedisDenyList_ExpiredIsNoop(t *testing.T) {
	ctx := context.Background()
	dl, mr := newTestRedisDenyList(t)

	require.NoError(t, dl.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(revokedKeyPrefix+"old"))
}

func TestRedisDenyList_Unavailable(t *testing.T) {
	ctx := context.Background()
	dl, mr := newTestRedisDenyList(t)
	mr.Close()

	_, err := dl.IsRevoked(ctx, "jti")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = dl.Revoke(ctx, "jti", time.Now().Add(time.Minute))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.Error(t, err)

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
