package session

import "context"

type sessionContextKey struct{}

// WithSession adds a resolved session to the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext retrieves the current session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MustFromContext retrieves the current session from the context or panics.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}

// ShopFromContext retrieves the shop domain of the current session.
func ShopFromContext(ctx context.Context) (string, bool) {
	sess, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.Shop, true
}
