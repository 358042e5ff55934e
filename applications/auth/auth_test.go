package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soundwalk/applications/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type userStore struct {
	users map[string]*user.User
	err   error
}

func (s *userStore) FindByUserID(_ context.Context, id string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", user.ErrNotFound, id)
	}
	return u, nil
}

func (s *userStore) Create(context.Context, *user.User) error { return nil }

func newService(t *testing.T) (*Service, *user.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &user.User{ID: primitive.NewObjectID(), UserID: "keith", PasswordHash: string(hash)}
	store := &userStore{users: map[string]*user.User{
		"keith":  admin,
		"nohash": {ID: primitive.NewObjectID(), UserID: "nohash"},
	}}
	return NewService("test-secret", 24*time.Hour, store), admin
}

func TestLogin(t *testing.T) {
	svc, admin := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "keith", "letmein")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.ID != admin.ID.Hex() || claims.Username != "keith" {
		t.Fatalf("claims = %+v", claims)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 24*time.Hour {
		t.Fatalf("ttl = %v", ttl)
	}

	cases := []struct {
		user, pass string
		want       error
	}{
		{"", "letmein", ErrMissingCredentials},
		{"keith", "", ErrMissingCredentials},
		{"keith", "wrong", ErrInvalidCredentials},
		{"barry", "letmein", ErrInvalidCredentials},
		{"nohash", "anything", ErrInvalidCredentials},
	}
	for _, c := range cases {
		if _, err := svc.Login(ctx, c.user, c.pass); !errors.Is(err, c.want) {
			t.Errorf("Login(%q,%q) = %v, want %v", c.user, c.pass, err, c.want)
		}
	}
}

func TestLoginStoreFailure(t *testing.T) {
	down := errors.New("db down")
	svc := NewService("s", time.Hour, &userStore{err: down})
	if _, err := svc.Login(context.Background(), "keith", "pw"); !errors.Is(err, down) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestParseJWTRejects(t *testing.T) {
	svc, admin := newService(t)

	expired := *svc
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := expired.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := svc.ParseJWT(old); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	other := NewService("another-secret", time.Hour, nil)
	forged, _ := other.GenerateJWT(admin)
	if _, err := svc.ParseJWT(forged); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{ID: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.ParseJWT(none); err == nil {
		t.Fatal("expected alg=none to be rejected")
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, admin := newService(t)
	token, _ := svc.GenerateJWT(admin)
	e := echo.New()

	handler := svc.JWTAuthMiddleware(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	})

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"query token", "", "?token=" + token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/gigs"+c.query, nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("%s: handler error %v", c.name, err)
		}
		if rec.Code != c.want {
			t.Errorf("%s: status %d, want %d", c.name, rec.Code, c.want)
		}
		if c.want == http.StatusOK && rec.Body.String() != "keith" {
			t.Errorf("%s: body %q", c.name, rec.Body.String())
		}
	}
}
