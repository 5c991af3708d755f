package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoStoreName = "mongodb"

	// mongoCollection is the collection documents are stored in.
	mongoCollection = "documents"
)

// mongoDocument is a stored document. The body is kept as the exact JSON bytes.
type mongoDocument struct {
	Scope     string    `bson:"scope"`
	Kind      string    `bson:"kind"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoStore struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client

	// coll is the documents collection.
	coll *mongo.Collection
}

// NewMongoStore creates a store that keeps every document in a MongoDB collection.
func NewMongoStore(ctx context.Context, l *slog.Logger, client *mongo.Client, database string) (Store, error) {
	coll := client.Database(database).Collection(mongoCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "scope", Value: 1}, {Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating documents index: %w", err)
	}

	return &mongoStore{
		l:      l.With(slog.String(logging.KeyDal, mongoStoreName)),
		client: client,
		coll:   coll,
	}, nil
}

func (s *mongoStore) Load(ctx context.Context, scope string, kind Kind) ([]byte, error) {
	defer observe(mongoStoreName, "load", kind)()

	if err := ValidateScope(scope); err != nil {
		return nil, err
	}

	doc := new(mongoDocument)
	err := s.coll.FindOne(ctx, bson.M{"scope": scope, "kind": string(kind)}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return s.create(ctx, scope, kind, kind.Empty())
	} else if err != nil {
		return nil, fmt.Errorf("error getting document: %w", err)
	}
	return []byte(doc.Data), nil
}

// create inserts the document only if it does not exist yet and returns the stored document.
func (s *mongoStore) create(ctx context.Context, scope string, kind Kind, data []byte) ([]byte, error) {
	filter := bson.M{"scope": scope, "kind": string(kind)}
	doc := &mongoDocument{
		Scope:     scope,
		Kind:      string(kind),
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, opts)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	stored := new(mongoDocument)
	if err := s.coll.FindOne(ctx, filter).Decode(stored); err != nil {
		return nil, fmt.Errorf("error getting document: %w", err)
	}
	return []byte(stored.Data), nil
}

func (s *mongoStore) Save(ctx context.Context, scope string, kind Kind, data []byte) error {
	defer observe(mongoStoreName, "save", kind)()

	if err := ValidateScope(scope); err != nil {
		return err
	}

	doc := &mongoDocument{
		Scope:     scope,
		Kind:      string(kind),
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.coll.UpdateOne(ctx, bson.M{"scope": scope, "kind": string(kind)}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}
	return nil
}

func (s *mongoStore) Scopes(ctx context.Context) ([]string, error) {
	defer observe(mongoStoreName, "scopes", "")()

	values, err := s.coll.Distinct(ctx, "scope", bson.M{"scope": bson.M{"$ne": RootScope}})
	if err != nil {
		return nil, fmt.Errorf("error listing scopes: %w", err)
	}

	scopes := make([]string, 0, len(values))
	for _, v := range values {
		if scope, ok := v.(string); ok {
			scopes = append(scopes, scope)
		}
	}
	sort.Strings(scopes)
	return scopes, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	defer observe(mongoStoreName, "ping", "")()

	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *mongoStore) Backend() string {
	return mongoStoreName
}
