package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	TeamID      uuid.UUID `json:"team_id" validate:"required"`
}

// CreateProject godoc
// @Summary Create a project in a team
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), userID, req.TeamID, req.Name, req.Description)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// ListByTeam godoc
// @Summary List a team's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {array} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/team/{teamId} [get]
func (h *ProjectHandler) ListByTeam(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := pathID(c, "teamId")
	if err != nil {
		return err
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), userID, teamID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), userID, projectID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, project)
}
