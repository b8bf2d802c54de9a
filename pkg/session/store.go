package session

import "context"

// Store is the persistence contract the resolver consumes. Implementations
// are keyed by session id; Store overwrites an existing session with the
// same id.
//
// Load returns ErrSessionNotFound for an absent id. Any other error is a
// store failure and propagates to the caller unchanged; the resolver
// performs no retries and has no fallback data source.
type Store interface {
	Store(ctx context.Context, sess *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
