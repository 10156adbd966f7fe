package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/cache"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// UserService exposes profile lookups. Only identity data is cached; access
// decisions are never cached.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.PublicProfile, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user_profile:%s", id.String())
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.PublicProfile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.PublicProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find user", err)
	}

	profile := user.Profile()
	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return &profile, nil
}
