package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGConfig configures the connection used by NewPGStoreFromConfig.
type PGConfig struct {
	ConnectionString string        `env:"SESSION_PG_CONN_URL"`
	MaxOpenConns     int32         `env:"SESSION_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns     int32         `env:"SESSION_PG_MAX_IDLE_CONNS" envDefault:"5"`
	RetryAttempts    int           `env:"SESSION_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"SESSION_PG_RETRY_INTERVAL" envDefault:"5s"`
}

var errPGNotReady = errors.New("session.postgres_not_ready")

// PGStore implements Store on a Postgres table, upserting by session id.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps an existing connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// NewPGStoreFromConfig connects to Postgres with retries and returns a
// ready store. The sessions table must exist; see EnsureSchema.
func NewPGStoreFromConfig(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err := pool.Ping(ctx); err == nil {
				return NewPGStore(pool), nil
			}
			pool.Close()
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}

	return nil, errPGNotReady
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id                 TEXT PRIMARY KEY,
			shop               TEXT NOT NULL,
			state              TEXT NOT NULL DEFAULT '',
			is_online          BOOLEAN NOT NULL DEFAULT FALSE,
			access_token       TEXT NOT NULL DEFAULT '',
			scope              TEXT NOT NULL DEFAULT '',
			expires_at         TIMESTAMPTZ,
			online_access_info JSONB
		)`)
	return err
}

// Store persists the session, overwriting by id.
func (s *PGStore) Store(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	var info []byte
	if sess.OnlineAccessInfo != nil {
		var err error
		if info, err = json.Marshal(sess.OnlineAccessInfo); err != nil {
			return fmt.Errorf("marshal online access info: %w", err)
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (id, shop, state, is_online, access_token, scope, expires_at, online_access_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			shop               = EXCLUDED.shop,
			state              = EXCLUDED.state,
			is_online          = EXCLUDED.is_online,
			access_token       = EXCLUDED.access_token,
			scope              = EXCLUDED.scope,
			expires_at         = EXCLUDED.expires_at,
			online_access_info = EXCLUDED.online_access_info`,
		sess.ID, sess.Shop, sess.State, sess.IsOnline, sess.AccessToken, sess.Scope, sess.ExpiresAt, info)
	return err
}

// Load retrieves a session by id, or ErrSessionNotFound.
func (s *PGStore) Load(ctx context.Context, id string) (*Session, error) {
	var (
		sess Session
		info []byte
	)

	err := s.pool.QueryRow(ctx, `
		SELECT id, shop, state, is_online, access_token, scope, expires_at, online_access_info
		FROM sessions WHERE id = $1`, id).
		Scan(&sess.ID, &sess.Shop, &sess.State, &sess.IsOnline, &sess.AccessToken, &sess.Scope, &sess.ExpiresAt, &info)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(info) > 0 {
		sess.OnlineAccessInfo = &OnlineAccessInfo{}
		if err := json.Unmarshal(info, sess.OnlineAccessInfo); err != nil {
			return nil, fmt.Errorf("unmarshal online access info: %w", err)
		}
	}

	return &sess, nil
}

// Delete removes a session by id. Deleting an absent id is not an error.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpired evicts sessions whose access token has expired.
func (s *PGStore) DeleteExpired(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at < now()`)
	return err
}

// Close releases the underlying pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
