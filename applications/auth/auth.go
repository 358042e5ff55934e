package auth

import (
	"errors"
	"fmt"
	"time"

	"soundwalk/applications/user"
	"soundwalk/logger"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredentials = errors.New("Missing credentials")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// UserClaims is the token body the admin client stores.
type UserClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs and checks admin tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  user.Store
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration, users user.Store) *Service {
	logger.Log.Info("[auth] JWT configuration loaded and signing key initialized.")
	return &Service{secret: []byte(secret), ttl: ttl, users: users, now: time.Now}
}

// GenerateJWT creates a new signed JWT for the user.
func (s *Service) GenerateJWT(u *user.User) (string, error) {
	now := s.now()
	claims := UserClaims{
		ID:       u.ID.Hex(),
		Username: u.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[auth] Failed to sign JWT for user %s: %v", u.UserID, err))
		return "", err
	}

	logger.Log.Info(fmt.Sprintf("[auth] Successfully generated JWT for user %s.", u.UserID))
	return tokenString, nil
}

// ParseJWT validates signature, algorithm and expiry.
func (s *Service) ParseJWT(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
