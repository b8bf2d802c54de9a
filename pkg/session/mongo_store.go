package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig configures the connection used by NewMongoStoreFromConfig.
type MongoConfig struct {
	ConnectionURL  string        `env:"SESSION_MONGODB_URL"`
	Database       string        `env:"SESSION_MONGODB_DATABASE" envDefault:"shopkit"`
	Collection     string        `env:"SESSION_MONGODB_COLLECTION" envDefault:"sessions"`
	ConnectTimeout time.Duration `env:"SESSION_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"SESSION_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"SESSION_MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

var errMongoNotReady = errors.New("session.mongodb_not_ready")

// MongoStore implements Store on a MongoDB collection, upserting by
// session id.
type MongoStore struct {
	coll *mongo.Collection
}

// sessionDoc is the BSON shape of a stored session; _id is the session id.
type sessionDoc struct {
	ID               string            `bson:"_id"`
	Shop             string            `bson:"shop"`
	State            string            `bson:"state,omitempty"`
	IsOnline         bool              `bson:"is_online"`
	AccessToken      string            `bson:"access_token,omitempty"`
	Scope            string            `bson:"scope,omitempty"`
	ExpiresAt        *time.Time        `bson:"expires_at,omitempty"`
	OnlineAccessInfo *OnlineAccessInfo `bson:"online_access_info,omitempty"`
}

// NewMongoStore wraps an existing collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// NewMongoStoreFromConfig connects to MongoDB with retries and returns a
// ready store.
func NewMongoStoreFromConfig(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return NewMongoStore(client.Database(cfg.Database).Collection(cfg.Collection)), nil
			}
			_ = client.Disconnect(ctx)
		}

		time.Sleep(cfg.RetryInterval)
	}

	return nil, errMongoNotReady
}

// Store persists the session, overwriting by id.
func (s *MongoStore) Store(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	doc := sessionDoc{
		ID:               sess.ID,
		Shop:             sess.Shop,
		State:            sess.State,
		IsOnline:         sess.IsOnline,
		AccessToken:      sess.AccessToken,
		Scope:            sess.Scope,
		ExpiresAt:        sess.ExpiresAt,
		OnlineAccessInfo: sess.OnlineAccessInfo,
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

// Load retrieves a session by id, or ErrSessionNotFound.
func (s *MongoStore) Load(ctx context.Context, id string) (*Session, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &Session{
		ID:               doc.ID,
		Shop:             doc.Shop,
		State:            doc.State,
		IsOnline:         doc.IsOnline,
		AccessToken:      doc.AccessToken,
		Scope:            doc.Scope,
		ExpiresAt:        doc.ExpiresAt,
		OnlineAccessInfo: doc.OnlineAccessInfo,
	}, nil
}

// Delete removes a session by id. Deleting an absent id is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
