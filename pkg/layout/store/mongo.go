package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/layout"
)

// MongoConfig configures a MongoDB layout store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds the initial connection and ping.
	Timeout time.Duration
}

// Default MongoDB settings.
const (
	DefaultMongoDatabase   = "combview"
	DefaultMongoCollection = "layouts"
	DefaultMongoTimeout    = 10 * time.Second
)

// Collection is the subset of *mongo.Collection used by MongoStore.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	Distinct(ctx context.Context, fieldName string, filter any, opts ...*options.DistinctOptions) ([]any, error)
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// record is the stored shape: the layout sections plus its name.
type record struct {
	Name            string `bson:"name"`
	layout.Document `bson:",inline"`
}

// MongoStore keeps one document per layout in a MongoDB collection.
type MongoStore struct {
	coll   Collection
	client *mongo.Client
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultMongoTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := NewMongoStoreFromCollection(client.Database(cfg.Database).Collection(cfg.Collection))
	s.client = client
	return s, nil
}

// NewMongoStoreFromCollection wraps an existing collection. Close does not
// disconnect a store created this way.
func NewMongoStoreFromCollection(coll Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, name string) (*layout.Document, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return nil, err
	}

	var rec record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name, err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutParse, err, "decode layout %q", name)
	}
	if err := rec.Document.Validate(); err != nil {
		return nil, err
	}
	return &rec.Document, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo distinct: %w", err)
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if n, ok := v.(string); ok {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Save implements Writer. The layout is upserted by name.
func (s *MongoStore) Save(ctx context.Context, name string, doc *layout.Document) error {
	if err := errors.ValidateLayoutName(name); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": name},
		record{Name: name, Document: *doc},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo save %q: %w", name, err)
	}
	return nil
}

// Close disconnects the client if this store opened it.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var (
	_ Store      = (*MongoStore)(nil)
	_ Writer     = (*MongoStore)(nil)
	_ Collection = (*mongo.Collection)(nil)
)
