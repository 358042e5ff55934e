package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"soundwalk/applications/auth"
	"soundwalk/applications/user"
	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

type loginService interface {
	Login(ctx context.Context, userID, password string) (string, error)
}

type AuthController struct {
	auth loginService
}

func NewAuthController(s loginService) *AuthController {
	return &AuthController{auth: s}
}

type LoginResponse struct {
	Token string `json:"token"`
}

// LoginHandler exchanges admin credentials for a bearer token.
func (h *AuthController) LoginHandler(c echo.Context) error {
	params := new(user.LoginParams)
	if err := c.Bind(params); err != nil {
		logger.Log.Warn(fmt.Sprintf("[auth] Login attempt failed: invalid request binding: %v", err))
		return errorJSON(c, http.StatusBadRequest, "Invalid login request")
	}

	token, err := h.auth.Login(c.Request().Context(), params.UserID, params.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errorJSON(c, http.StatusUnauthorized, err.Error())
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}
