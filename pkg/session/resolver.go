package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopkit/shopkit/pkg/cookie"
)

// Resolver decides which stored session, if any, an inbound request carries
// a valid proof for. It is stateless across calls, performs exactly one
// store read per resolution, and never writes to the store or the response.
type Resolver struct {
	config  Config
	store   Store
	tokens  *TokenValidator
	sources []proofSource
	log     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCookieManager enables the cookie proof channel. Required for
// non-embedded apps; for embedded apps it provides the fallback channel used
// when no Authorization header is present.
func WithCookieManager(mgr *cookie.Manager) ResolverOption {
	return func(rs *Resolver) {
		if mgr != nil {
			rs.sources = append(rs.sources, cookieSource{cookies: mgr, name: rs.config.CookieName})
		}
	}
}

// WithLogger attaches a logger for debug-level resolution diagnostics.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(rs *Resolver) {
		if log != nil {
			rs.log = log
		}
	}
}

// NewResolver creates a resolver for the app described by cfg. Embedded
// apps need APIKey and APISecret for token validation; non-embedded apps
// need a cookie manager, their only proof channel.
func NewResolver(cfg Config, store Store, opts ...ResolverOption) (*Resolver, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultConfig().CookieName
	}

	rs := &Resolver{
		config: cfg,
		store:  store,
		log:    slog.New(slog.DiscardHandler),
	}

	// The proof channels form an ordered attempt list: bearer first for
	// embedded apps, then the cookie. Sources are consulted in order and
	// the first one that produces a proof decides the outcome.
	if cfg.IsEmbeddedApp {
		tokens, err := NewTokenValidator(cfg.APIKey, cfg.APISecret)
		if err != nil {
			return nil, err
		}
		rs.tokens = tokens
		rs.sources = append(rs.sources, bearerSource{})
	}

	for _, opt := range opts {
		opt(rs)
	}

	if !cfg.IsEmbeddedApp && len(rs.sources) == 0 {
		return nil, ErrNoCookieManager
	}

	return rs, nil
}

// Resolve returns the current session for the request, or nil when the
// request carries no proof or the proof maps to no stored session of the
// requested mode. online selects between the user-scoped online session and
// the shop-scoped offline session.
//
// A present-but-malformed Authorization header fails with ErrMissingProof; a
// present-but-invalid token fails with ErrInvalidToken. Store failures
// propagate unchanged. None of these are ever downgraded to a nil session.
func (rs *Resolver) Resolve(ctx context.Context, r *http.Request, online bool) (*Session, error) {
	for _, src := range rs.sources {
		p, ok, err := src.extract(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return rs.lookup(ctx, p, online)
	}

	// No channel produced a proof: a benign, non-exceptional outcome.
	return nil, nil
}

// lookup turns one extracted proof into a session id, reads the store once,
// and enforces the requested access mode.
func (rs *Resolver) lookup(ctx context.Context, p proof, online bool) (*Session, error) {
	id := p.sessionID

	if p.bearerToken != "" {
		payload, err := rs.tokens.Validate(p.bearerToken)
		if err != nil {
			return nil, err
		}

		shop, err := payload.Shop()
		if err != nil {
			return nil, err
		}

		if online {
			id, err = OnlineSessionID(shop, payload.Subject)
		} else {
			id, err = OfflineSessionID(shop)
		}
		if err != nil {
			return nil, err
		}
	}

	sess, err := rs.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		rs.log.DebugContext(ctx, "no session stored for resolved id", slog.String("session_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sess.IsOnline != online {
		rs.log.DebugContext(ctx, "stored session mode does not match request",
			slog.String("session_id", id), slog.Bool("requested_online", online))
		return nil, nil
	}

	return sess, nil
}
