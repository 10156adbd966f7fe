package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/access"
	"taskhub/internal/model"
)

// ownershipRepository answers the parent-pointer lookups used by the access
// resolver. gorm.ErrRecordNotFound becomes found=false; only infrastructure
// failures come back as errors.
type ownershipRepository struct {
	db *gorm.DB
}

var _ access.OwnershipStore = (*ownershipRepository)(nil)

// NewOwnershipRepository creates the store consumed by access.Resolver.
func NewOwnershipRepository(db *gorm.DB) access.OwnershipStore {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) FindMembership(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ownershipRepository) FindProjectOwnerTeam(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Select("id", "team_id").Where("id = ?", projectID).First(&p).Error
	return parentOf(p.TeamID, err)
}

func (r *ownershipRepository) FindTaskOwnerProject(ctx context.Context, taskID uuid.UUID) (uuid.UUID, bool, error) {
	var t model.Task
	err := r.db.WithContext(ctx).Select("id", "project_id").Where("id = ?", taskID).First(&t).Error
	return parentOf(t.ProjectID, err)
}

func (r *ownershipRepository) FindAttachmentOwnerTask(ctx context.Context, attachmentID uuid.UUID) (uuid.UUID, bool, error) {
	var a model.Attachment
	err := r.db.WithContext(ctx).Select("id", "task_id").Where("id = ?", attachmentID).First(&a).Error
	return parentOf(a.TaskID, err)
}

func parentOf(parent uuid.UUID, err error) (uuid.UUID, bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return parent, true, nil
}
