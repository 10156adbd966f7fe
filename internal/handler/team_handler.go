package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeamRequest represents a team creation request.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMemberRequest names the user to add by email.
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateTeam godoc
// @Summary Create a team
// @Description The caller becomes the team's admin member.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTeamRequest true "Team data"
// @Success 201 {object} model.Team
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.teamService.CreateTeam(c.Request().Context(), userID, req.Name)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, team)
}

// ListTeams godoc
// @Summary List the caller's teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TeamSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teams, err := h.teamService.ListTeams(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, teams)
}

// GetTeam godoc
// @Summary Get a team with its projects
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} model.Team
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{teamId} [get]
func (h *TeamHandler) GetTeam(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := pathID(c, "teamId")
	if err != nil {
		return err
	}

	team, err := h.teamService.GetTeam(c.Request().Context(), userID, teamID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, team)
}

// AddMember godoc
// @Summary Add an existing user to a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body AddMemberRequest true "Member email"
// @Success 201 {object} model.TeamMembership
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /teams/{teamId}/members [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := pathID(c, "teamId")
	if err != nil {
		return err
	}
	var req AddMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	membership, err := h.teamService.AddMember(c.Request().Context(), userID, teamID, req.Email)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, membership)
}
