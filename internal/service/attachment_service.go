package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskhub/internal/access"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// AttachmentService records attachment metadata. Attachments inherit the
// access chain of their task.
type AttachmentService interface {
	Upload(ctx context.Context, userID, taskID uuid.UUID, fileName, url string) (*model.Attachment, error)
	ListByTask(ctx context.Context, userID, taskID uuid.UUID) ([]model.Attachment, error)
	Get(ctx context.Context, userID, attachmentID uuid.UUID) (*model.Attachment, error)
}

type attachmentService struct {
	attachments repository.AttachmentRepository
	authz       Authorizer
}

// NewAttachmentService creates a new attachment service.
func NewAttachmentService(attachments repository.AttachmentRepository, authz Authorizer) AttachmentService {
	return &attachmentService{attachments: attachments, authz: authz}
}

func (s *attachmentService) Upload(ctx context.Context, userID, taskID uuid.UUID, fileName, url string) (*model.Attachment, error) {
	if err := s.authz.Require(ctx, userID, access.KindTask, taskID); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		FileName: strings.TrimSpace(fileName),
		URL:      strings.TrimSpace(url),
		TaskID:   taskID,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, storeError("create attachment", err)
	}
	return attachment, nil
}

func (s *attachmentService) ListByTask(ctx context.Context, userID, taskID uuid.UUID) ([]model.Attachment, error) {
	if err := s.authz.Require(ctx, userID, access.KindTask, taskID); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, storeError("list attachments", err)
	}
	return attachments, nil
}

func (s *attachmentService) Get(ctx context.Context, userID, attachmentID uuid.UUID) (*model.Attachment, error) {
	if err := s.authz.Require(ctx, userID, access.KindAttachment, attachmentID); err != nil {
		return nil, err
	}
	attachment, err := s.attachments.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, storeError("find attachment", err)
	}
	return attachment, nil
}
