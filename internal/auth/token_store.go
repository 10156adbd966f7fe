package auth

import (
	"context"
	"time"

	"taskhub/internal/cache"
)

const revokedRenewalKeyPrefix = "revoked:renewal_token:"

// TokenStore is a Redis-backed denylist of renewal token ids. Entries expire
// with the token they revoke, so the set never outgrows the live tokens.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements Revoker
var _ Revoker = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke denylists a renewal token id for ttl.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.SetStrict(ctx, revokedRenewalKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks whether a renewal token id is denylisted. Redis errors are
// returned, not treated as "not revoked".
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, revokedRenewalKeyPrefix+tokenID)
}
