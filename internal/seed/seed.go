// Package seed loads demo data through the same services the API uses, so
// seeded rows obey the same invariants as anything created over HTTP.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// Data is the seed file layout.
type Data struct {
	Users []User `json:"users"`
	Teams []Team `json:"teams"`
}

// User is a seeded account.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Team is created by Owner; Members are added by email.
type Team struct {
	Name     string    `json:"name"`
	Owner    string    `json:"owner"`
	Members  []string  `json:"members"`
	Projects []Project `json:"projects"`
}

// Project is a seeded project with its tasks.
type Project struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Tasks       []Task  `json:"tasks"`
}

// Task is a seeded task. An empty status leaves it at TODO.
type Task struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      model.TaskStatus `json:"status"`
}

// Summary counts what a run created.
type Summary struct {
	Users, ExistingUsers, Teams, Members, Projects, Tasks int
}

// Load reads seed data from a local path or an http(s) URL.
func Load(source string) (*Data, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed data: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open seed file: %w", err)
		}
		r = f
	}
	defer r.Close()
	return Decode(r)
}

// Decode parses seed data.
func Decode(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
	}
	return &data, nil
}

// Seeder applies Data through the service layer.
type Seeder struct {
	Auth     service.AuthService
	Teams    service.TeamService
	Projects service.ProjectService
	Tasks    service.TaskService
	Log      *logger.Logger
}

// Run creates users, then teams with members, projects and tasks. Users that
// already exist are logged in instead, so the run can be repeated; teams and
// everything below them are always created fresh.
func (s *Seeder) Run(ctx context.Context, data *Data) (Summary, error) {
	var sum Summary
	ids := make(map[string]uuid.UUID, len(data.Users))

	for _, u := range data.Users {
		result, err := s.Auth.Register(ctx, u.Email, u.Password, u.Name)
		if errors.Is(err, apperrors.ErrEmailTaken) {
			result, err = s.Auth.Login(ctx, u.Email, u.Password)
			sum.ExistingUsers++
		} else if err == nil {
			sum.Users++
		}
		if err != nil {
			return sum, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		ids[strings.ToLower(u.Email)] = result.User.ID
	}

	for _, t := range data.Teams {
		ownerID, ok := ids[strings.ToLower(t.Owner)]
		if !ok {
			return sum, fmt.Errorf("team %q: owner %s is not a seeded user", t.Name, t.Owner)
		}
		team, err := s.Teams.CreateTeam(ctx, ownerID, t.Name)
		if err != nil {
			return sum, fmt.Errorf("seed team %q: %w", t.Name, err)
		}
		sum.Teams++

		for _, email := range t.Members {
			if _, err := s.Teams.AddMember(ctx, ownerID, team.ID, email); err != nil && !errors.Is(err, apperrors.ErrAlreadyMember) {
				return sum, fmt.Errorf("team %q: add %s: %w", t.Name, email, err)
			}
			sum.Members++
		}

		for _, p := range t.Projects {
			project, err := s.Projects.CreateProject(ctx, ownerID, team.ID, p.Name, p.Description)
			if err != nil {
				return sum, fmt.Errorf("seed project %q: %w", p.Name, err)
			}
			sum.Projects++

			for _, tk := range p.Tasks {
				task, err := s.Tasks.CreateTask(ctx, ownerID, project.ID, tk.Title, tk.Description)
				if err != nil {
					return sum, fmt.Errorf("seed task %q: %w", tk.Title, err)
				}
				if tk.Status != "" && tk.Status != model.TaskStatusTodo {
					if _, err := s.Tasks.UpdateStatus(ctx, ownerID, task.ID, tk.Status); err != nil {
						return sum, fmt.Errorf("task %q: set status: %w", tk.Title, err)
					}
				}
				sum.Tasks++
			}
		}
		s.Log.Infow("seeded team", "team", t.Name, "projects", len(t.Projects))
	}
	return sum, nil
}
