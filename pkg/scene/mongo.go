package scene

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/observability"
)

// DefaultMongoCollection is the collection scenes are stored in.
const DefaultMongoCollection = "scenes"

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore stores scenes as documents keyed by scene id.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore connects and pings the server.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongodb")
	}

	return &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (sc *Scene, err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "mongo", "scene", "get", time.Since(start), err) }()

	if err := errors.ValidateID("scene", id); err != nil {
		return nil, err
	}

	var out Scene
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find scene %s", id)
	}
	return &out, nil
}

func (s *MongoStore) Put(ctx context.Context, sc *Scene) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "mongo", "scene", "put", time.Since(start), err) }()

	if err := prepare(sc); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sc.ID}, sc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "replace scene %s", sc.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "mongo", "scene", "delete", time.Since(start), err) }()

	if err := errors.ValidateID("scene", id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete scene %s", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
