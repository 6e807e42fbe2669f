// Package mongo implements storage.Store on MongoDB.
//
// Each event is one document in the events collection, keyed by its id:
//
//	{ "_id": "gophercon-eu", "name": "...", "timezone": "...",
//	  "venues": [...], "sessions": [...] }
//
// Network and timeout errors are marked retryable so the pipeline can retry
// them with cache.RetryWithBackoff.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
)

// Defaults for Options.
const (
	DefaultDatabase   = "schedgrid"
	DefaultCollection = "events"
)

// Options configures the connection.
type Options struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds the initial connect and ping.
	Timeout time.Duration
}

// Store is a MongoDB-backed event store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to MongoDB and pings the primary.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{client: client, coll: client.Database(opts.Database).Collection(opts.Collection)}, nil
}

// NewFromCollection wraps an existing collection. Close does not disconnect
// the underlying client.
func NewFromCollection(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// GetEvent implements storage.Store.
func (s *Store) GetEvent(ctx context.Context, id string) (*schedule.Event, error) {
	var ev schedule.Event
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("get event %s: %w", id, err))
	}
	return &ev, nil
}

// PutEvent implements storage.Store.
func (s *Store) PutEvent(ctx context.Context, ev *schedule.Event) error {
	if ev == nil || ev.ID == "" {
		return fmt.Errorf("put event: id is required")
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": ev.ID}, ev, options.Replace().SetUpsert(true))
	if err != nil {
		return classify(fmt.Errorf("put event %s: %w", ev.ID, err))
	}
	return nil
}

// DeleteEvent implements storage.Store.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify(fmt.Errorf("delete event %s: %w", id, err))
	}
	if res.DeletedCount == 0 {
		return storage.NotFound(id)
	}
	return nil
}

// ListEvents implements storage.Store.
func (s *Store) ListEvents(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify(fmt.Errorf("list events: %w", err))
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(fmt.Errorf("list events: %w", err))
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// Close disconnects the client opened by Open.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// classify marks transient driver errors as retryable.
func classify(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(err)
	}
	return err
}

var _ storage.Store = (*Store)(nil)
