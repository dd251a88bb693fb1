package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoDatabase   = "eventline"
	mongoCollection = "timelines"
	mongoTimeout    = 5 * time.Second
)

// MongoStore keeps timeline documents in a MongoDB collection. Use it
// when several server instances share one set of saved timelines.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client: client,
		col:    client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Timeline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list timelines: %w", err)
	}
	defer cursor.Close(ctx)

	var timelines []Timeline
	if err := cursor.All(ctx, &timelines); err != nil {
		return nil, fmt.Errorf("mongo decode timelines: %w", err)
	}
	return timelines, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Timeline, error) {
	if err := ValidateID(id); err != nil {
		return Timeline{}, err
	}

	var t Timeline
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return Timeline{}, notFound(id)
	}
	if err != nil {
		return Timeline{}, fmt.Errorf("mongo get timeline %s: %w", id, err)
	}
	return t, nil
}

func (s *MongoStore) Save(ctx context.Context, t Timeline) error {
	if err := ValidateID(t.ID); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, opts); err != nil {
		return fmt.Errorf("mongo save timeline %s: %w", t.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete timeline %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
