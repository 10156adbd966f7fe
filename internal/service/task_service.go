package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskhub/internal/access"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// TaskService handles task operations.
type TaskService interface {
	CreateTask(ctx context.Context, userID, projectID uuid.UUID, title string, description *string) (*model.Task, error)
	ListTasks(ctx context.Context, userID, projectID uuid.UUID) ([]model.Task, error)
	UpdateStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (*model.Task, error)
}

type taskService struct {
	tasks repository.TaskRepository
	authz Authorizer
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, authz Authorizer) TaskService {
	return &taskService{tasks: tasks, authz: authz}
}

// CreateTask adds a TODO task to a project the caller can reach.
func (s *taskService) CreateTask(ctx context.Context, userID, projectID uuid.UUID, title string, description *string) (*model.Task, error) {
	if err := s.authz.Require(ctx, userID, access.KindProject, projectID); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       strings.TrimSpace(title),
		Description: nonEmpty(description),
		Status:      model.TaskStatusTodo,
		ProjectID:   projectID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, storeError("create task", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID, projectID uuid.UUID) ([]model.Task, error) {
	if err := s.authz.Require(ctx, userID, access.KindProject, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return tasks, nil
}

// UpdateStatus sets any status on a task; there is no workflow ordering.
func (s *taskService) UpdateStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if err := s.authz.Require(ctx, userID, access.KindTask, taskID); err != nil {
		return nil, err
	}
	task, err := s.tasks.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return nil, storeError("update task status", err)
	}
	return task, nil
}
