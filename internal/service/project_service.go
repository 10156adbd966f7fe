package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskhub/internal/access"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// ProjectService handles project operations.
type ProjectService interface {
	CreateProject(ctx context.Context, userID, teamID uuid.UUID, name string, description *string) (*model.Project, error)
	ListProjects(ctx context.Context, userID, teamID uuid.UUID) ([]model.Project, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
	authz    Authorizer
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, authz Authorizer) ProjectService {
	return &projectService{projects: projects, authz: authz}
}

func (s *projectService) CreateProject(ctx context.Context, userID, teamID uuid.UUID, name string, description *string) (*model.Project, error) {
	if err := s.authz.Require(ctx, userID, access.KindTeam, teamID); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        strings.TrimSpace(name),
		Description: nonEmpty(description),
		TeamID:      teamID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, storeError("create project", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID, teamID uuid.UUID) ([]model.Project, error) {
	if err := s.authz.Require(ctx, userID, access.KindTeam, teamID); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, storeError("list projects", err)
	}
	return projects, nil
}

func (s *projectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	if err := s.authz.Require(ctx, userID, access.KindProject, projectID); err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, storeError("find project", err)
	}
	return project, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
