package gig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundwalk/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence the gig use cases need.
type Store interface {
	List(ctx context.Context) ([]*Gig, error)
	ListFrom(ctx context.Context, from time.Time) ([]*Gig, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Gig, error)
	Insert(ctx context.Context, g *Gig) error
	Update(ctx context.Context, id primitive.ObjectID, g *Gig) (*Gig, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetCalendarEventID(ctx context.Context, id primitive.ObjectID, eventID string) error
}

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(store *db.Store) *MongoStore {
	return &MongoStore{col: store.Collection(db.GigsCollection)}
}

var byDate = options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

func (s *MongoStore) List(ctx context.Context) ([]*Gig, error) {
	return s.find(ctx, bson.D{})
}

// ListFrom returns gigs dated on or after from, earliest first.
func (s *MongoStore) ListFrom(ctx context.Context, from time.Time) ([]*Gig, error) {
	return s.find(ctx, bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: from}}}})
}

func (s *MongoStore) find(ctx context.Context, filter bson.D) ([]*Gig, error) {
	cur, err := s.col.Find(ctx, filter, byDate)
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	gigs := make([]*Gig, 0)
	if err := cur.All(ctx, &gigs); err != nil {
		return nil, fmt.Errorf("error decoding gigs: %w", err)
	}
	return gigs, nil
}

func (s *MongoStore) Get(ctx context.Context, id primitive.ObjectID) (*Gig, error) {
	g := &Gig{}
	err := s.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	return g, nil
}

func (s *MongoStore) Insert(ctx context.Context, g *Gig) error {
	g.ID = primitive.NilObjectID
	res, err := s.col.InsertOne(ctx, g)
	if err != nil {
		return fmt.Errorf("failed to insert gig: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

// Update overwrites the editable fields; the linked calendar event id is left alone.
func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, g *Gig) (*Gig, error) {
	set := bson.D{
		{Key: "venue", Value: g.Venue},
		{Key: "date", Value: g.Date},
		{Key: "startTime", Value: g.StartTime},
		{Key: "description", Value: g.Description},
		{Key: "internalNotes", Value: g.InternalNotes},
		{Key: "fee", Value: float64(g.Fee)},
		{Key: "paymentMethod", Value: g.PaymentMethod},
		{Key: "paymentSplit", Value: g.PaymentSplit},
		{Key: "paymentSplitRoss", Value: float64(g.PaymentSplitRoss)},
		{Key: "paymentSplitKeith", Value: float64(g.PaymentSplitKeith)},
		{Key: "paymentSplitBarry", Value: float64(g.PaymentSplitBarry)},
		{Key: "privateEvent", Value: g.PrivateEvent},
		{Key: "postersNeeded", Value: g.PostersNeeded},
	}

	updated := &Gig{}
	err := s.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("database update error: %w", err)
	}
	return updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("database deletion error: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (s *MongoStore) SetCalendarEventID(ctx context.Context, id primitive.ObjectID, eventID string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "calendarEventId", Value: eventID}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to store calendar event id: %w", err)
	}
	return nil
}
