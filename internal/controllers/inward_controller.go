package controllers

import (
	"net/http"

	"register-server/internal/apperrors"
	"register-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// InwardController handles HTTP requests for the inward register.
type InwardController struct {
	inwardService *logics.InwardService
}

// NewInwardController returns a new instance of InwardController.
func NewInwardController(inwardService *logics.InwardService) *InwardController {
	return &InwardController{inwardService: inwardService}
}

// CreateInward handles POST /api/inward
func (ic *InwardController) CreateInward(c echo.Context) error {
	var input logics.CreateInwardInput
	if err := c.Bind(&input); err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid request body"))
	}

	entry, err := ic.inwardService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// ListInward handles GET /api/inward
func (ic *InwardController) ListInward(c echo.Context) error {
	entries, err := ic.inwardService.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetInward handles GET /api/inward/:id
func (ic *InwardController) GetInward(c echo.Context) error {
	entry, err := ic.inwardService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entry": entry})
}

// AssignInward handles PUT /api/inward/:id/assign
func (ic *InwardController) AssignInward(c echo.Context) error {
	var input logics.AssignInput
	if err := c.Bind(&input); err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid request body"))
	}

	entry, err := ic.inwardService.Assign(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entry": entry})
}

// UpdateInwardStatus handles PUT /api/inward/:id/status
func (ic *InwardController) UpdateInwardStatus(c echo.Context) error {
	var input struct {
		AssignmentStatus string `json:"assignment_status"`
	}
	if err := c.Bind(&input); err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid request body"))
	}

	entry, err := ic.inwardService.UpdateStatus(c.Request().Context(), c.Param("id"), input.AssignmentStatus)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entry": entry})
}
