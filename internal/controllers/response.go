package controllers

import (
	"register-server/configs"
	"register-server/internal/apperrors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// fail maps a service error onto the response envelope. Internal errors keep
// their detail in the log, not the response body.
func fail(c echo.Context, err error) error {
	status := apperrors.ToHTTPStatus(err)
	message := err.Error()
	if status >= 500 {
		configs.Logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		message = "internal server error"
	}
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func ok(c echo.Context, status int, fields map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(status, body)
}
