package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
}

// UpdateStatusRequest represents a task status change.
type UpdateStatusRequest struct {
	Status model.TaskStatus `json:"status" validate:"required"`
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), userID, req.ProjectID, req.Title, req.Description)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListByProject godoc
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {array} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/project/{projectId} [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), userID, projectID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateStatus godoc
// @Summary Change a task's status
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body UpdateStatusRequest true "New status (TODO, IN_PROGRESS, DONE)"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "taskId")
	if err != nil {
		return err
	}
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), userID, taskID, req.Status)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, task)
}
