package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	users     map[string]*User
	findErr   error
	createErr error
}

func (m *memStore) FindByUserID(_ context.Context, userID string) (*User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	return u, nil
}

func (m *memStore) Create(_ context.Context, u *User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = primitive.NewObjectID()
	m.users[u.UserID] = u
	return nil
}

func TestSeedAdminCreatesOnce(t *testing.T) {
	store := &memStore{users: map[string]*User{}}

	u, created, err := SeedAdmin(context.Background(), store, "ross", "s3cret")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	if u.PasswordHash == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}

	again, created, err := SeedAdmin(context.Background(), store, "ross", "other")
	if err != nil || created || again.ID != u.ID {
		t.Fatalf("second seed should be a no-op: created=%v err=%v", created, err)
	}
}

func TestSeedAdminSkipsWhenUnset(t *testing.T) {
	store := &memStore{users: map[string]*User{}}
	u, created, err := SeedAdmin(context.Background(), store, "", "")
	if u != nil || created || err != nil || len(store.users) != 0 {
		t.Fatalf("unexpected seed: %v %v %v", u, created, err)
	}
}

func TestSeedAdminPropagatesStoreErrors(t *testing.T) {
	down := errors.New("db down")
	if _, _, err := SeedAdmin(context.Background(), &memStore{findErr: down}, "ross", "pw"); !errors.Is(err, down) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	store := &memStore{users: map[string]*User{}, createErr: down}
	if _, _, err := SeedAdmin(context.Background(), store, "ross", "pw"); !errors.Is(err, down) {
		t.Fatalf("expected create error, got %v", err)
	}
}
