package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundwalk/logger"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the admin account with a bcrypt hash of password when no
// account with userID exists. An existing account is left untouched.
func SeedAdmin(ctx context.Context, store Store, userID, password string) (*User, bool, error) {
	if userID == "" || password == "" {
		return nil, false, nil
	}

	existing, err := store.FindByUserID(ctx, userID)
	if err == nil {
		logger.Log.Info(fmt.Sprintf("[user] Admin %s already present, seed skipped.", userID))
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash admin password: %w", err)
	}

	u := &User{
		UserID:       userID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.Create(ctx, u); err != nil {
		logger.Log.Error(fmt.Sprintf("[user] Failed to seed admin %s: %v", userID, err))
		return nil, false, err
	}

	logger.Log.Info(fmt.Sprintf("[user] Admin %s seeded.", userID))
	return u, true, nil
}
