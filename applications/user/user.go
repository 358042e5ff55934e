package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soundwalk/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("user not found")

// User is an admin account. Only admins log in; the public site is anonymous.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"user_id" bson:"user_id"`
	PasswordHash string             `json:"-" bson:"passwordHash,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// LoginParams for incoming credentials
type LoginParams struct {
	UserID   string `json:"user_id"`
	Password string `json:"password,omitempty"`
}

type Store interface {
	FindByUserID(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, u *User) error
}

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(store *db.Store) *MongoStore {
	return &MongoStore{col: store.Collection(db.UsersCollection)}
}

func (s *MongoStore) FindByUserID(ctx context.Context, userID string) (*User, error) {
	u := &User{}
	err := s.col.FindOne(ctx, bson.D{{Key: "user_id", Value: strings.TrimSpace(userID)}}).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	return u, nil
}

func (s *MongoStore) Create(ctx context.Context, u *User) error {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}
