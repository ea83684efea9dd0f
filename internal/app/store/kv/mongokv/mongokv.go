// internal/app/store/kv/mongokv/mongokv.go
package mongokv

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultCollection is used when the configured collection name is blank.
const DefaultCollection = "kv_entries"

// Store keeps one document per key: { _id: key, value, updated_at }.
type Store struct {
	c *mongo.Collection
}

type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func New(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{c: db.Collection(collection)}
}

// Collection exposes the backing collection for schema setup.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.c.Database().Client().Ping(ctx, readpref.Primary())
}
