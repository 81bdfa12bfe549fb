package persist

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	deskerrors "github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/observability"
)

// MongoConfig holds connection settings for MongoRepository.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Defaults for empty MongoConfig fields.
const (
	DefaultMongoDatabase   = "deskgrid"
	DefaultMongoCollection = "dashboards"
)

// mongoDocument is a Document keyed by profile.
type mongoDocument struct {
	Profile  string `bson:"_id"`
	Document `bson:",inline"`
}

// MongoRepository keeps one document per profile in a MongoDB collection.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	profile    string
}

// NewMongoRepository connects to MongoDB and verifies the connection.
func NewMongoRepository(ctx context.Context, cfg MongoConfig, profile string) (*MongoRepository, error) {
	if cfg.URI == "" {
		return nil, deskerrors.New(deskerrors.ErrCodeInvalidConfig, "mongo: empty uri")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if profile == "" {
		profile = DefaultProfile
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Nested settings decode as bson.M rather than bson.D.
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, deskerrors.Wrap(deskerrors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, deskerrors.Wrap(deskerrors.ErrCodeStorage, err, "ping mongo")
	}

	return &MongoRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		profile:    profile,
	}, nil
}

// Load fetches the profile's document.
func (r *MongoRepository) Load(ctx context.Context) (*Document, error) {
	start := time.Now()
	d, err := r.load(ctx)
	observability.Storage().OnLoad(ctx, "mongo", time.Since(start), err)
	return d, err
}

func (r *MongoRepository) load(ctx context.Context) (*Document, error) {
	var stored mongoDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": r.profile}).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, deskerrors.Wrap(deskerrors.ErrCodeStorage, err, "load dashboard %s", r.profile)
	}
	d := stored.Document
	return &d, nil
}

// Save upserts the profile's document.
func (r *MongoRepository) Save(ctx context.Context, d *Document) error {
	if d == nil {
		return deskerrors.New(deskerrors.ErrCodeInvalidInput, "nil document")
	}
	start := time.Now()
	raw, err := encodeMongoDocument(r.profile, d)
	if err != nil {
		return err
	}
	_, err = r.collection.ReplaceOne(ctx,
		bson.M{"_id": r.profile},
		raw,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		err = deskerrors.Wrap(deskerrors.ErrCodeStorage, err, "save dashboard %s", r.profile)
	}
	observability.Storage().OnSave(ctx, "mongo", len(raw), time.Since(start), err)
	return err
}

// encodeMongoDocument returns the BSON form of d stored under profile.
func encodeMongoDocument(profile string, d *Document) (bson.Raw, error) {
	data, err := bson.Marshal(mongoDocument{Profile: profile, Document: *d})
	if err != nil {
		return nil, deskerrors.Wrap(deskerrors.ErrCodeInternal, err, "encode dashboard %s", profile)
	}
	return bson.Raw(data), nil
}

// Delete removes the profile's document.
func (r *MongoRepository) Delete(ctx context.Context) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": r.profile}); err != nil {
		return deskerrors.Wrap(deskerrors.ErrCodeStorage, err, "delete dashboard %s", r.profile)
	}
	return nil
}

// Close disconnects the client.
func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

var _ Repository = (*MongoRepository)(nil)
