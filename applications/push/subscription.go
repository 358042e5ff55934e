package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundwalk/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidSubscription = errors.New("Invalid push subscription payload")

type Keys struct {
	P256dh string `json:"p256dh" bson:"p256dh"`
	Auth   string `json:"auth" bson:"auth"`
}

// Subscription is a browser push endpoint. The endpoint URL is its key.
type Subscription struct {
	Endpoint       string    `json:"endpoint" bson:"endpoint"`
	ExpirationTime *int64    `json:"expirationTime" bson:"expirationTime"`
	Keys           Keys      `json:"keys" bson:"keys"`
	UserAgent      string    `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SubscriptionParams is what PushManager.subscribe() hands the browser code.
type SubscriptionParams struct {
	Endpoint       string `json:"endpoint"`
	ExpirationTime *int64 `json:"expirationTime"`
	Keys           *Keys  `json:"keys"`
}

func (p *SubscriptionParams) Validate() error {
	if p == nil || p.Endpoint == "" || p.Keys == nil || p.Keys.P256dh == "" || p.Keys.Auth == "" {
		return ErrInvalidSubscription
	}
	return nil
}

type Store interface {
	Upsert(ctx context.Context, sub *Subscription) error
	List(ctx context.Context) ([]*Subscription, error)
	DeleteByEndpoints(ctx context.Context, endpoints []string) (int64, error)
}

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(store *db.Store) *MongoStore {
	return &MongoStore{col: store.Collection(db.PushSubscriptionsCollection)}
}

// Upsert refreshes keys and user agent for a known endpoint and only sets
// createdAt the first time the endpoint is seen.
func (s *MongoStore) Upsert(ctx context.Context, sub *Subscription) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "expirationTime", Value: sub.ExpirationTime},
			{Key: "keys", Value: sub.Keys},
			{Key: "userAgent", Value: sub.UserAgent},
			{Key: "updatedAt", Value: sub.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "createdAt", Value: sub.CreatedAt},
		}},
	}
	_, err := s.col.UpdateOne(ctx,
		bson.D{{Key: "endpoint", Value: sub.Endpoint}},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Subscription, error) {
	cur, err := s.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	subs := make([]*Subscription, 0)
	if err := cur.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("error decoding push subscriptions: %w", err)
	}
	return subs, nil
}

func (s *MongoStore) DeleteByEndpoints(ctx context.Context, endpoints []string) (int64, error) {
	if len(endpoints) == 0 {
		return 0, nil
	}
	res, err := s.col.DeleteMany(ctx, bson.D{{Key: "endpoint", Value: bson.D{{Key: "$in", Value: endpoints}}}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale subscriptions: %w", err)
	}
	return res.DeletedCount, nil
}
