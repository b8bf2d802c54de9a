package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the connection used by NewRedisStoreFromConfig.
type RedisConfig struct {
	ConnectionURL  string        `env:"SESSION_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix      string        `env:"SESSION_REDIS_KEY_PREFIX" envDefault:"shopkit:session:"`
	RetryAttempts  int           `env:"SESSION_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"SESSION_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"SESSION_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

var errRedisNotReady = errors.New("session.redis_not_ready")

// RedisStore implements Store on a shared Redis backend. Sessions are JSON
// values keyed by prefixed session id; online sessions carry a TTL matching
// their expiry so Redis itself handles eviction.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "shopkit:session:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

// NewRedisStoreFromConfig connects to Redis with retries and returns a
// ready store.
func NewRedisStoreFromConfig(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewRedisStore(client, cfg.KeyPrefix), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(errRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errRedisNotReady
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// Store persists the session, overwriting by id. Online sessions expire
// with their access token; offline sessions persist until deleted.
func (s *RedisStore) Store(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if sess.ExpiresAt != nil {
		ttl = time.Until(*sess.ExpiresAt)
		if ttl <= 0 {
			// Already expired; storing it would be indistinguishable from
			// deleting it, so do that.
			return s.Delete(ctx, sess.ID)
		}
	}

	return s.client.Set(ctx, s.key(sess.ID), data, ttl).Err()
}

// Load retrieves a session by id, or ErrSessionNotFound.
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &sess, nil
}

// Delete removes a session by id. Deleting an absent id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
