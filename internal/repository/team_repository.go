package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TeamRepository defines team and membership persistence operations.
type TeamRepository interface {
	CreateWithOwner(ctx context.Context, team *model.Team, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TeamSummary, error)
	FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMembership, error)
	AddMember(ctx context.Context, membership *model.TeamMembership) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// CreateWithOwner inserts the team and its creator's admin membership in one
// transaction, so a team never exists without a member.
func (r *teamRepository) CreateWithOwner(ctx context.Context, team *model.Team, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Create(&model.TeamMembership{
			TeamID: team.ID,
			UserID: ownerID,
			Role:   model.TeamRoleAdmin,
		}).Error
	})
}

// FindByID loads a team with its projects.
func (r *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByUser lists the teams userID belongs to, with project and member counts.
func (r *teamRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TeamSummary, error) {
	var teams []model.TeamSummary
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Select(`teams.*,
			(SELECT COUNT(*) FROM projects WHERE projects.team_id = teams.id) AS project_count,
			(SELECT COUNT(*) FROM team_memberships WHERE team_memberships.team_id = teams.id) AS member_count`).
		Joins("JOIN team_memberships m ON m.team_id = teams.id AND m.user_id = ?", userID).
		Order("teams.created_at DESC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// FindMembership returns gorm.ErrRecordNotFound when the pair is absent.
func (r *teamRepository) FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMembership, error) {
	var m model.TeamMembership
	if err := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// AddMember inserts a membership row. The unique index on (team_id, user_id)
// rejects duplicates.
func (r *teamRepository) AddMember(ctx context.Context, membership *model.TeamMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}
