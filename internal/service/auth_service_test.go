package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
	"taskhub/internal/model"
)

func newTokenService(clock auth.Clock) *auth.TokenService {
	return auth.NewTokenService("access-secret", "renewal-secret", auth.WithClock(clock))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "successful registration",
			email:     "  Test@Example.com ",
			password:  "password123",
			nameField: "Test User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "email already registered",
			email:     "existing@example.com",
			password:  "password123",
			nameField: "Existing User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:      "duplicate insert race",
			email:     "race@example.com",
			password:  "password123",
			nameField: "Racer",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:      "store unavailable",
			email:     "down@example.com",
			password:  "password123",
			nameField: "Down",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "down@example.com").Return(nil, errors.New("connection refused"))
			},
			expectedError: apperrors.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := newTokenService(auth.SystemClock())
			svc := NewAuthService(mockRepo, tokens, logger.Nop())
			result, err := svc.Register(context.Background(), tt.email, tt.password, tt.nameField)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "test@example.com", result.User.Email)
				assert.Equal(t, tt.nameField, result.User.Name)

				userID, err := tokens.VerifyAccess(result.Tokens.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, result.User.ID, userID)
				assert.NotEmpty(t, result.Tokens.RenewalToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "test@example.com", Name: "Test", PasswordHash: string(hashed)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := newTokenService(auth.SystemClock())
			svc := NewAuthService(mockRepo, tokens, logger.Nop())
			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, result.User.ID)
				userID, err := tokens.VerifyAccess(result.Tokens.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, user.ID, userID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginComparesHashForUnknownEmail(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	known := &model.User{ID: uuid.New(), Email: "known@example.com", PasswordHash: string(hashed)}

	var compared int
	original := compareHash
	compareHash = func(hash, password []byte) error {
		compared++
		return original(hash, password)
	}
	t.Cleanup(func() { compareHash = original })

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "known@example.com").Return(known, nil)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	svc := NewAuthService(mockRepo, newTokenService(auth.SystemClock()), logger.Nop())
	ctx := context.Background()

	_, errKnown := svc.Login(ctx, "known@example.com", "wrong-password")
	knownComparisons := compared

	compared = 0
	_, errUnknown := svc.Login(ctx, "ghost@example.com", "wrong-password")

	assert.Equal(t, 1, knownComparisons)
	assert.Equal(t, 1, compared)
	assert.Equal(t, errKnown, errUnknown)
	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	clock := auth.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	tokens := newTokenService(clock)
	svc := NewAuthService(new(MockUserRepository), tokens, logger.Nop())
	ctx := context.Background()
	userID := uuid.New()

	pair, err := tokens.Issue(userID)
	require.NoError(t, err)

	// Authenticated
	got, err := svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// AccessExpired
	clock.Advance(16 * time.Minute)
	_, err = svc.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// back to Authenticated through renewal
	access, err := svc.Refresh(ctx, pair.RenewalToken)
	require.NoError(t, err)
	got, err = svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// logout is a server-side no-op: the renewal token still works
	require.NoError(t, svc.Logout(ctx, pair.RenewalToken))
	_, err = svc.Refresh(ctx, pair.RenewalToken)
	require.NoError(t, err)

	// Unauthenticated once the renewal token lapses
	clock.Advance(auth.RenewalTokenExpiry)
	_, err = svc.Refresh(ctx, pair.RenewalToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthService_AuthenticateCollapsesFailureKinds(t *testing.T) {
	tokens := newTokenService(auth.SystemClock())
	svc := NewAuthService(new(MockUserRepository), tokens, logger.Nop())
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Authenticate(ctx, token)
		assert.Equal(t, apperrors.ErrUnauthenticated, err)
	}

	_, err := svc.Refresh(ctx, "garbage")
	assert.Equal(t, apperrors.ErrUnauthenticated, err)
}
