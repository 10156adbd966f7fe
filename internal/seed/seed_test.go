package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

type mockAuth struct {
	service.AuthService
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, email, password, name string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

type recordingTeams struct {
	service.TeamService
	added []string
}

func (r *recordingTeams) CreateTeam(_ context.Context, _ uuid.UUID, name string) (*model.Team, error) {
	return &model.Team{ID: uuid.New(), Name: name}, nil
}

func (r *recordingTeams) AddMember(_ context.Context, _, teamID uuid.UUID, email string) (*model.TeamMembership, error) {
	r.added = append(r.added, email)
	return &model.TeamMembership{TeamID: teamID}, nil
}

type recordingProjects struct {
	service.ProjectService
}

func (recordingProjects) CreateProject(_ context.Context, _, teamID uuid.UUID, name string, _ *string) (*model.Project, error) {
	return &model.Project{ID: uuid.New(), Name: name, TeamID: teamID}, nil
}

type recordingTasks struct {
	service.TaskService
	statuses map[string]model.TaskStatus
	byID     map[uuid.UUID]string
}

func (r *recordingTasks) CreateTask(_ context.Context, _, projectID uuid.UUID, title string, _ *string) (*model.Task, error) {
	task := &model.Task{ID: uuid.New(), Title: title, ProjectID: projectID, Status: model.TaskStatusTodo}
	r.byID[task.ID] = title
	r.statuses[title] = task.Status
	return task, nil
}

func (r *recordingTasks) UpdateStatus(_ context.Context, _, taskID uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	r.statuses[r.byID[taskID]] = status
	return &model.Task{ID: taskID, Status: status}, nil
}

const sample = `{
  "users": [
    {"email": "alice@example.com", "password": "password123", "name": "Alice"},
    {"email": "bob@example.com", "password": "password123", "name": "Bob"}
  ],
  "teams": [
    {"name": "Eng", "owner": "Alice@Example.com", "members": ["bob@example.com"],
     "projects": [{"name": "API", "tasks": [{"title": "a", "status": "DONE"}, {"title": "b"}]}]}
  ]
}`

func profile(email string) *service.AuthResult {
	return &service.AuthResult{User: model.PublicProfile{ID: uuid.New(), Email: email}}
}

func TestSeeder_Run(t *testing.T) {
	data, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	authn := new(mockAuth)
	authn.On("Register", mock.Anything, "alice@example.com", "password123", "Alice").Return(profile("alice@example.com"), nil)
	authn.On("Register", mock.Anything, "bob@example.com", "password123", "Bob").Return(nil, apperrors.ErrEmailTaken)
	authn.On("Login", mock.Anything, "bob@example.com", "password123").Return(profile("bob@example.com"), nil)

	teams := &recordingTeams{}
	tasks := &recordingTasks{statuses: map[string]model.TaskStatus{}, byID: map[uuid.UUID]string{}}
	s := &Seeder{Auth: authn, Teams: teams, Projects: recordingProjects{}, Tasks: tasks, Log: logger.Nop()}

	sum, err := s.Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, Summary{Users: 1, ExistingUsers: 1, Teams: 1, Members: 1, Projects: 1, Tasks: 2}, sum)
	assert.Equal(t, []string{"bob@example.com"}, teams.added)
	assert.Equal(t, model.TaskStatusDone, tasks.statuses["a"])
	assert.Equal(t, model.TaskStatusTodo, tasks.statuses["b"])
	authn.AssertExpectations(t)
}

func TestSeeder_UnknownOwner(t *testing.T) {
	data := &Data{Teams: []Team{{Name: "Ghost", Owner: "nobody@example.com"}}}
	s := &Seeder{Auth: new(mockAuth), Teams: &recordingTeams{}, Log: logger.Nop()}

	_, err := s.Run(context.Background(), data)
	assert.ErrorContains(t, err, "not a seeded user")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestLoad_DemoFile(t *testing.T) {
	data, err := Load("../../seed/demo.json")
	require.NoError(t, err)
	assert.NotEmpty(t, data.Users)
	assert.NotEmpty(t, data.Teams)
}
