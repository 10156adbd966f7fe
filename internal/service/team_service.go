package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/access"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// TeamService handles team operations.
type TeamService interface {
	CreateTeam(ctx context.Context, userID uuid.UUID, name string) (*model.Team, error)
	ListTeams(ctx context.Context, userID uuid.UUID) ([]model.TeamSummary, error)
	GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*model.Team, error)
	AddMember(ctx context.Context, userID, teamID uuid.UUID, email string) (*model.TeamMembership, error)
}

type teamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
	authz Authorizer
}

// NewTeamService creates a new team service.
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository, authz Authorizer) TeamService {
	return &teamService{teams: teams, users: users, authz: authz}
}

// CreateTeam creates a team with the caller as its admin member.
func (s *teamService) CreateTeam(ctx context.Context, userID uuid.UUID, name string) (*model.Team, error) {
	team := &model.Team{Name: strings.TrimSpace(name)}
	if err := s.teams.CreateWithOwner(ctx, team, userID); err != nil {
		return nil, storeError("create team", err)
	}
	return team, nil
}

// ListTeams returns the teams the caller belongs to.
func (s *teamService) ListTeams(ctx context.Context, userID uuid.UUID) ([]model.TeamSummary, error) {
	teams, err := s.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list teams", err)
	}
	return teams, nil
}

// GetTeam returns a team and its projects if the caller is a member.
func (s *teamService) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*model.Team, error) {
	if err := s.authz.Require(ctx, userID, access.KindTeam, teamID); err != nil {
		return nil, err
	}
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, storeError("find team", err)
	}
	return team, nil
}

// AddMember adds an existing user to the team with the member role. Any
// member may add others; roles are recorded but not enforced.
func (s *teamService) AddMember(ctx context.Context, userID, teamID uuid.UUID, email string) (*model.TeamMembership, error) {
	if err := s.authz.Require(ctx, userID, access.KindTeam, teamID); err != nil {
		return nil, err
	}

	invitee, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeError("find invitee", err)
	}

	if _, err := s.teams.FindMembership(ctx, teamID, invitee.ID); err == nil {
		return nil, apperrors.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("find membership", err)
	}

	membership := &model.TeamMembership{
		TeamID: teamID,
		UserID: invitee.ID,
		Role:   model.TeamRoleMember,
	}
	if err := s.teams.AddMember(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, storeError("add member", err)
	}
	return membership, nil
}
