package auth

import (
	"context"
	"time"
)

// RevocationChecker answers whether a renewal token id has been revoked
// before its natural expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Revoker is a RevocationChecker that can also record revocations.
type Revoker interface {
	RevocationChecker
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// NoRevocation is the stateless default: nothing is ever revoked and logout
// has no server-side effect.
type NoRevocation struct{}

// IsRevoked always returns false.
func (NoRevocation) IsRevoked(context.Context, string) (bool, error) { return false, nil }
