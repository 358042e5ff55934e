package auth

import (
	"fmt"
	"net/http"
	"strings"

	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

// JWTAuthMiddleware admits requests carrying a valid admin token.
func (s *Service) JWTAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		tokenString := ""

		// Prefer Authorization header
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}

		// Fallback: ?token= for links opened outside the app (payslip downloads)
		if tokenString == "" {
			tokenString = c.QueryParam("token")
		}

		if tokenString == "" {
			logger.Log.Warn(fmt.Sprintf("[auth] JWT check failed for %s: no token.", c.Path()))
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization token missing"})
		}

		claims, err := s.ParseJWT(tokenString)
		if err != nil {
			logger.Log.Warn(fmt.Sprintf("[auth] Invalid or expired JWT: %v", err))
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set("userID", claims.ID)
		c.Set("username", claims.Username)
		return next(c)
	}
}
