package controllers

import (
	"github.com/labstack/echo/v4"
)

// errorJSON is the single error body shape every handler returns.
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
