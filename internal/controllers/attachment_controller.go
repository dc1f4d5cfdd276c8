package controllers

import (
	"net/http"

	"register-server/internal/apperrors"
	"register-server/internal/logics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AttachmentController handles HTTP requests for letter scans.
type AttachmentController struct {
	attachmentService *logics.AttachmentService
}

// NewAttachmentController returns a new instance of AttachmentController.
func NewAttachmentController(attachmentService *logics.AttachmentService) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService}
}

// UploadAttachment handles POST /api/inward/:id/attachments
func (ac *AttachmentController) UploadAttachment(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "file is required"))
	}
	file, err := header.Open()
	if err != nil {
		return fail(c, apperrors.Wrap(err, "failed to open uploaded file"))
	}

	attachment, err := ac.attachmentService.Upload(c.Request().Context(), c.Param("id"), file, header)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, map[string]interface{}{"attachment": attachment})
}

// ListAttachments handles GET /api/inward/:id/attachments
func (ac *AttachmentController) ListAttachments(c echo.Context) error {
	attachments, err := ac.attachmentService.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"attachments": attachments})
}

// GetDownloadLink handles GET /api/inward/:id/attachments/:attachmentId/link
func (ac *AttachmentController) GetDownloadLink(c echo.Context) error {
	attachmentID, err := uuid.Parse(c.Param("attachmentId"))
	if err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid attachment id"))
	}

	url, err := ac.attachmentService.DownloadLink(c.Request().Context(), c.Param("id"), attachmentID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"url": url})
}

// DeleteAttachment handles DELETE /api/inward/:id/attachments/:attachmentId
func (ac *AttachmentController) DeleteAttachment(c echo.Context) error {
	attachmentID, err := uuid.Parse(c.Param("attachmentId"))
	if err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid attachment id"))
	}

	if err := ac.attachmentService.Delete(c.Request().Context(), c.Param("id"), attachmentID); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}
