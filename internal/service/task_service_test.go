package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhub/internal/access"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

func TestTaskService_CreateTask(t *testing.T) {
	userID, projectID := uuid.New(), uuid.New()
	tasks := new(MockTaskRepository)
	authz := new(MockAuthorizer)

	authz.On("Require", mock.Anything, userID, access.KindProject, projectID).Return(nil)
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Status == model.TaskStatusTodo && task.ProjectID == projectID && task.Description == nil
	})).Return(nil)

	blank := "   "
	svc := NewTaskService(tasks, authz)
	task, err := svc.CreateTask(context.Background(), userID, projectID, "Write docs", &blank)

	require.NoError(t, err)
	assert.Equal(t, "Write docs", task.Title)
	tasks.AssertExpectations(t)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()

	tests := []struct {
		name          string
		status        model.TaskStatus
		setupMock     func(*MockTaskRepository, *MockAuthorizer)
		expectedError error
	}{
		{
			name:   "any transition is allowed",
			status: model.TaskStatusDone,
			setupMock: func(tasks *MockTaskRepository, authz *MockAuthorizer) {
				authz.On("Require", mock.Anything, userID, access.KindTask, taskID).Return(nil)
				tasks.On("UpdateStatus", mock.Anything, taskID, model.TaskStatusDone).
					Return(&model.Task{ID: taskID, Status: model.TaskStatusDone}, nil)
			},
		},
		{
			name:          "unknown status rejected before any lookup",
			status:        model.TaskStatus("BLOCKED"),
			setupMock:     func(*MockTaskRepository, *MockAuthorizer) {},
			expectedError: apperrors.ErrInvalidStatus,
		},
		{
			name:   "no access",
			status: model.TaskStatusInProgress,
			setupMock: func(tasks *MockTaskRepository, authz *MockAuthorizer) {
				authz.On("Require", mock.Anything, userID, access.KindTask, taskID).Return(apperrors.ErrNotFoundOrForbidden)
			},
			expectedError: apperrors.ErrNotFoundOrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(MockTaskRepository)
			authz := new(MockAuthorizer)
			tt.setupMock(tasks, authz)

			svc := NewTaskService(tasks, authz)
			task, err := svc.UpdateStatus(context.Background(), userID, taskID, tt.status)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, task.Status)
			}
			tasks.AssertExpectations(t)
			authz.AssertExpectations(t)
		})
	}
}

func TestProjectService_ListProjectsRequiresTeamAccess(t *testing.T) {
	userID, teamID := uuid.New(), uuid.New()
	projects := new(MockProjectRepository)
	authz := new(MockAuthorizer)
	authz.On("Require", mock.Anything, userID, access.KindTeam, teamID).Return(apperrors.ErrNotFoundOrForbidden)

	svc := NewProjectService(projects, authz)
	list, err := svc.ListProjects(context.Background(), userID, teamID)

	assert.ErrorIs(t, err, apperrors.ErrNotFoundOrForbidden)
	assert.Nil(t, list)
	projects.AssertNotCalled(t, "ListByTeam", mock.Anything, mock.Anything)
}

func TestProjectService_CreateProject(t *testing.T) {
	userID, teamID := uuid.New(), uuid.New()
	projects := new(MockProjectRepository)
	authz := new(MockAuthorizer)
	authz.On("Require", mock.Anything, userID, access.KindTeam, teamID).Return(nil)
	projects.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	desc := "Backend work"
	svc := NewProjectService(projects, authz)
	project, err := svc.CreateProject(context.Background(), userID, teamID, "API", &desc)

	require.NoError(t, err)
	assert.Equal(t, teamID, project.TeamID)
	require.NotNil(t, project.Description)
	assert.Equal(t, "Backend work", *project.Description)
}
