package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const bcryptCost = 10

var (
	compareHash = bcrypt.CompareHashAndPassword

	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the email is not registered;
// every failed login runs exactly one bcrypt comparison.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskhub-unknown-user"), bcryptCost)
	})
	return dummyHash
}

// AuthResult is handed to the HTTP layer after login or registration.
type AuthResult struct {
	Tokens auth.TokenPair
	User   model.PublicProfile
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, renewalToken string) (accessToken string, err error)
	Logout(ctx context.Context, renewalToken string) error
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	log      *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// Register creates a user with a hashed password and logs them in.
func (s *authService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("check user existence", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, storeError("create user", err)
	}

	return s.issue(user)
}

// Login checks credentials and issues a token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = compareHash(unknownUserHash(), []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}

	if err := compareHash([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh exchanges a renewal token for a new access token. The renewal token
// stays valid.
func (s *authService) Refresh(ctx context.Context, renewalToken string) (string, error) {
	accessToken, userID, err := s.tokens.Renew(ctx, renewalToken)
	if err != nil {
		if errors.Is(err, auth.ErrRevocationUnavailable) {
			return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
		}
		if errors.Is(err, auth.ErrTokenInvalid) || errors.Is(err, auth.ErrTokenExpired) || errors.Is(err, auth.ErrTokenRevoked) {
			s.log.WithContext(ctx).Debugw("renewal rejected", "reason", err.Error())
			return "", apperrors.ErrUnauthenticated
		}
		return "", err
	}
	s.log.WithContext(ctx).WithUser(userID.String()).Debugw("access token renewed")
	return accessToken, nil
}

// Logout ends the client session. Without a revocation store this has no
// server-side effect.
func (s *authService) Logout(ctx context.Context, renewalToken string) error {
	if err := s.tokens.RevokeClientSession(ctx, renewalToken); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return nil
}

// Authenticate verifies an access token. Expired and forged tokens both
// come back as ErrUnauthenticated; the difference is only logged.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	userID, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		s.log.WithContext(ctx).Debugw("access token rejected", "reason", err.Error())
		return uuid.Nil, apperrors.ErrUnauthenticated
	}
	return userID, nil
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{Tokens: tokens, User: user.Profile()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
