package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamRole is the role tag recorded on a membership.
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// Team groups users and owns projects.
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members  []TeamMembership `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Projects []Project        `json:"projects,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TeamMembership links a user to a team. At most one row exists per pair.
type TeamMembership struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:char(36);not null;uniqueIndex:idx_team_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_team_user;index"`
	Role      TeamRole  `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (m *TeamMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TeamSummary is a team with aggregate counts, as listed for a user.
type TeamSummary struct {
	Team
	ProjectCount int64 `json:"project_count"`
	MemberCount  int64 `json:"member_count"`
}
