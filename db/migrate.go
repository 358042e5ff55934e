package db

import (
	"context"
	"fmt"

	"soundwalk/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

var indexes = []indexSpec{
	{
		collection: GigsCollection,
		model:      mongo.IndexModel{Keys: bson.D{{Key: "date", Value: 1}}},
	},
	{
		collection: UsersCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	},
	{
		collection: PushSubscriptionsCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "endpoint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	},
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// run on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("database connection is nil, call Connect first")
	}

	for _, idx := range indexes {
		name, err := s.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return fmt.Errorf("error creating index on %s: %w", idx.collection, err)
		}
		logger.Log.Info(fmt.Sprintf("[db] Index %s ready on %s", name, idx.collection))
	}
	return nil
}
