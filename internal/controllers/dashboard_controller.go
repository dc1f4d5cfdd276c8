package controllers

import (
	"net/http"

	"register-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// DashboardController handles HTTP requests for register statistics.
type DashboardController struct {
	dashboardService *logics.DashboardService
}

// NewDashboardController returns a new instance of DashboardController.
func NewDashboardController(dashboardService *logics.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats handles GET /api/dashboard/stats
func (dc *DashboardController) GetStats(c echo.Context) error {
	stats, err := dc.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"stats": stats})
}

// GetTeamStats handles GET /api/dashboard/team/:team
func (dc *DashboardController) GetTeamStats(c echo.Context) error {
	team := c.Param("team")
	stats, err := dc.dashboardService.TeamStats(c.Request().Context(), team)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"team": team, "stats": stats})
}

// GetTeamsSummary handles GET /api/dashboard/teams
func (dc *DashboardController) GetTeamsSummary(c echo.Context) error {
	summary, err := dc.dashboardService.TeamsSummary(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"teamStats": summary})
}
