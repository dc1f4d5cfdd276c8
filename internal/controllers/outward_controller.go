package controllers

import (
	"net/http"
	"time"

	"register-server/internal/apperrors"
	"register-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// OutwardController handles HTTP requests for the outward register.
type OutwardController struct {
	outwardService *logics.OutwardService
}

// NewOutwardController returns a new instance of OutwardController.
func NewOutwardController(outwardService *logics.OutwardService) *OutwardController {
	return &OutwardController{outwardService: outwardService}
}

// CreateOutward handles POST /api/outward
func (oc *OutwardController) CreateOutward(c echo.Context) error {
	var input logics.CreateOutwardInput
	if err := c.Bind(&input); err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid request body"))
	}

	entry, err := oc.outwardService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// ListOutward handles GET /api/outward
func (oc *OutwardController) ListOutward(c echo.Context) error {
	filter := logics.ListOutwardFilter{Team: c.QueryParam("team")}

	if raw := c.QueryParam("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid start_date, expected YYYY-MM-DD"))
		}
		filter.StartDate = &start
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid end_date, expected YYYY-MM-DD"))
		}
		filter.EndDate = &end
	}

	entries, err := oc.outwardService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetOutward handles GET /api/outward/:id
func (oc *OutwardController) GetOutward(c echo.Context) error {
	entry, err := oc.outwardService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entry": entry})
}

// CloseCase handles PUT /api/outward/:id/close
func (oc *OutwardController) CloseCase(c echo.Context) error {
	entry, err := oc.outwardService.CloseCase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"entry": entry})
}
