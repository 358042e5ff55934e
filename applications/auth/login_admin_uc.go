package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"soundwalk/applications/user"
	"soundwalk/logger"

	"golang.org/x/crypto/bcrypt"
)

// Login checks an admin's credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, userID, password string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || password == "" {
		return "", ErrMissingCredentials
	}
	logger.Log.Info(fmt.Sprintf("[auth] Admin login attempt started for %s", userID))

	// 1. Retrieve the user record
	u, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Log.Warn(fmt.Sprintf("[auth] Admin login failed for %s: user not found.", userID))
			return "", ErrInvalidCredentials
		}
		logger.Log.Error(fmt.Sprintf("[auth] Admin lookup failed for %s: %v", userID, err))
		return "", err
	}

	// 2. Accounts without a hash cannot log in
	if u.PasswordHash == "" {
		logger.Log.Warn(fmt.Sprintf("[auth] Admin login blocked for %s: no password set.", userID))
		return "", ErrInvalidCredentials
	}

	// 3. Compare the provided password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warn(fmt.Sprintf("[auth] Admin login failed for %s: password mismatch.", userID))
		return "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(u)
	if err != nil {
		return "", fmt.Errorf("failed to generate JWT: %w", err)
	}

	logger.Log.Info(fmt.Sprintf("[auth] Admin login successful for %s. JWT issued.", userID))
	return token, nil
}
