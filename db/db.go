package db

import (
	"context"
	"fmt"
	"time"

	"soundwalk/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	GigsCollection              = "gigs"
	UsersCollection             = "users"
	PushSubscriptionsCollection = "push_subscriptions"
)

// Store owns the Mongo client for the lifetime of the process. It is created
// once in main and handed to every repository that needs it.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the client and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	prefix := uri
	if len(prefix) > 20 {
		prefix = prefix[:20]
	}
	logger.Log.Info(fmt.Sprintf("[db] Connecting to Mongo with URI prefix: %s", prefix))

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[db] Error opening mongo client: %v", err))
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	logger.Log.Info("[db] Pinging database to verify connection...")
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Log.Error(fmt.Sprintf("[db] Failed to ping database: %v", err))
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	logger.Log.Info(fmt.Sprintf("[db] Successfully connected to MongoDB database %q", dbName))
	return &Store{Client: client, DB: client.Database(dbName)}, nil
}

// Collection is a shorthand used by the repositories.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.DB.Collection(name)
}

// Ping is used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
