package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/publish"
)

// Defaults used when the MongoDB URL names no database.
const (
	DefaultMongoDatabase   = "lotplan"
	DefaultMongoCollection = "publications"
)

// MongoStore keeps one document per publication, keyed by its id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the deployment in rawURL. The URL path selects
// the database; it defaults to "lotplan".
func NewMongoStore(ctx context.Context, rawURL string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(rawURL))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse mongodb URL")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "mongodb is not reachable")
	}
	coll := client.Database(mongoDatabase(rawURL)).Collection(DefaultMongoCollection)
	return &MongoStore{client: client, coll: coll}, nil
}

func mongoDatabase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultMongoDatabase
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return DefaultMongoDatabase
}

func (s *MongoStore) Save(ctx context.Context, pub *publish.Publication) error {
	if err := checkID(pub.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": pub.ID}, pub, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "save publication %s to mongodb", pub.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*publish.Publication, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var pub publish.Publication
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&pub)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	return &pub, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
