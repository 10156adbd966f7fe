package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment records a file reference on a task. The bytes live elsewhere;
// URL is the storage locator.
type Attachment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FileName  string    `json:"file_name" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"size:1024;not null"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
