package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// AttachmentHandler handles attachment metadata endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadAttachmentRequest carries the file name and where the bytes are stored.
type UploadAttachmentRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url,max=1024"`
}

// Upload godoc
// @Summary Attach a file reference to a task
// @Tags attachments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body UploadAttachmentRequest true "Attachment metadata"
// @Success 201 {object} model.Attachment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attachments/upload/{taskId} [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "taskId")
	if err != nil {
		return err
	}
	var req UploadAttachmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	attachment, err := h.attachmentService.Upload(c.Request().Context(), userID, taskID, req.FileName, req.URL)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, attachment)
}

// ListByTask godoc
// @Summary List a task's attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {array} model.Attachment
// @Failure 404 {object} errors.ErrorResponse
// @Router /attachments/task/{taskId} [get]
func (h *AttachmentHandler) ListByTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "taskId")
	if err != nil {
		return err
	}

	attachments, err := h.attachmentService.ListByTask(c.Request().Context(), userID, taskID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, attachments)
}

// Get godoc
// @Summary Get attachment metadata
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} model.Attachment
// @Failure 404 {object} errors.ErrorResponse
// @Router /attachments/{attachmentId} [get]
func (h *AttachmentHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	attachmentID, err := pathID(c, "attachmentId")
	if err != nil {
		return err
	}

	attachment, err := h.attachmentService.Get(c.Request().Context(), userID, attachmentID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, attachment)
}
