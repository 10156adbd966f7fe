package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RenewalTokenExpiry is the duration for which renewal tokens are valid.
	RenewalTokenExpiry = 7 * 24 * time.Hour
)

var (
	// ErrTokenInvalid covers bad signatures, wrong keys, wrong algorithms and
	// malformed tokens or claims.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is returned for a renewal token on the denylist.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRevocationUnavailable is returned when the denylist cannot be consulted.
	ErrRevocationUnavailable = errors.New("revocation check unavailable")
)

// Claims carries identity only. Team memberships and roles are never embedded.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenPair is returned on login and registration.
type TokenPair struct {
	AccessToken  string
	RenewalToken string
}

// TokenService issues, verifies and renews HS256 tokens. Access and renewal
// tokens are signed with different keys.
type TokenService struct {
	accessSecret  []byte
	renewalSecret []byte
	clock         Clock
	revocation    RevocationChecker
}

// Option customises a TokenService.
type Option func(*TokenService)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *TokenService) { s.clock = c }
}

// WithRevocationChecker enables renewal-token revocation.
func WithRevocationChecker(r RevocationChecker) Option {
	return func(s *TokenService) { s.revocation = r }
}

// NewTokenService creates a token service with the given signing keys.
func NewTokenService(accessSecret, renewalSecret string, opts ...Option) *TokenService {
	s := &TokenService{
		accessSecret:  []byte(accessSecret),
		renewalSecret: []byte(renewalSecret),
		clock:         SystemClock(),
		revocation:    NoRevocation{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints an access token and a renewal token for the user.
func (s *TokenService) Issue(userID uuid.UUID) (TokenPair, error) {
	access, err := s.sign(s.accessSecret, userID, AccessTokenExpiry)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	renewal, err := s.sign(s.renewalSecret, userID, RenewalTokenExpiry)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign renewal token: %w", err)
	}
	return TokenPair{AccessToken: access, RenewalToken: renewal}, nil
}

// VerifyAccess returns the user id carried by a valid access token.
func (s *TokenService) VerifyAccess(tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString, s.accessSecret)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(claims.UserID), nil
}

// Renew mints a fresh access token from a renewal token. The renewal token is
// not rotated and stays usable until it expires or is revoked.
func (s *TokenService) Renew(ctx context.Context, renewalToken string) (string, uuid.UUID, error) {
	claims, err := s.parse(renewalToken, s.renewalSecret)
	if err != nil {
		return "", uuid.Nil, err
	}

	revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	if revoked {
		return "", uuid.Nil, ErrTokenRevoked
	}

	userID := uuid.MustParse(claims.UserID)
	access, err := s.sign(s.accessSecret, userID, AccessTokenExpiry)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("sign access token: %w", err)
	}
	return access, userID, nil
}

// RevokeClientSession ends a session. With the stateless default this does
// nothing server-side and the client simply discards its tokens. When a
// Revoker is configured, the renewal token id is denylisted until the token
// would have expired anyway. Unparseable tokens are ignored.
func (s *TokenService) RevokeClientSession(ctx context.Context, renewalToken string) error {
	revoker, ok := s.revocation.(Revoker)
	if !ok || renewalToken == "" {
		return nil
	}
	claims, err := s.parse(renewalToken, s.renewalSecret)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	return nil
}

func (s *TokenService) sign(secret []byte, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parse checks the signature with the library and the time claims against
// the injected clock.
func (s *TokenService) parse(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.ExpiresAt == nil || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrTokenInvalid
	}

	now := s.clock.Now()
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return nil, ErrTokenInvalid
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
