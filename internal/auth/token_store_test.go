package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/cache"
)

func TestTokenStore_RevokeAndExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "token-1", 5*time.Minute))

	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(6 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_UnavailableRedisSurfacesError(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "token-1")
	assert.Error(t, err)
}

func TestTokenStore_LogoutEndsRenewal(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	svc, _ := newTestService(WithRevocationChecker(store))
	ctx := context.Background()

	pair, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, _, err = svc.Renew(ctx, pair.RenewalToken)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeClientSession(ctx, pair.RenewalToken))

	_, _, err = svc.Renew(ctx, pair.RenewalToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
