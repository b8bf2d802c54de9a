// Package session resolves which previously-established session an inbound
// request belongs to.
//
// A merchant-facing app authenticates requests through one of two proof
// channels. Embedded apps, running inside the platform's host UI, present a
// host-minted HS256 session token in the Authorization header. Standalone
// apps present a signed browser cookie whose value is the session id itself.
// The Resolver reconciles both channels into one deterministic outcome:
//
//   - a *Session, when a valid proof maps to a stored session of the
//     requested access mode,
//   - (nil, nil), when no proof is present or no matching session is stored,
//   - an error, when a proof is present but malformed or cryptographically
//     invalid, or when the store fails.
//
// A malformed or invalid bearer token is never downgraded to "no session":
// a forged proof must not be mistaken for an anonymous request. Only the
// complete absence of a proof falls through to the next channel.
//
// Sessions come in two access modes. Offline sessions are long-lived,
// shop-scoped, and stored under the deterministic id OfflineSessionID(shop).
// Online sessions are user-scoped, carry an expiry, and are stored under
// OnlineSessionID(shop, userID). The two id namespaces cannot collide: the
// separator "_" is illegal in shop domains.
//
// # Usage
//
//	store := session.NewMemoryStore(5 * time.Minute)
//	cookies, _ := cookie.New([]string{apiSecret})
//
//	resolver, err := session.NewResolver(session.Config{
//	    IsEmbeddedApp: true,
//	    APIKey:        apiKey,
//	    APISecret:     apiSecret,
//	}, store, session.WithCookieManager(cookies))
//	if err != nil {
//	    // handle error
//	}
//
//	sess, err := resolver.Resolve(ctx, r, true)
//	switch {
//	case err != nil:
//	    // invalid proof or store failure
//	case sess == nil:
//	    // no current session; start the OAuth flow
//	default:
//	    // authenticated
//	}
//
// Persistence is pluggable through the Store interface; memory, Redis,
// Postgres, and MongoDB adapters ship with the package.
package session
