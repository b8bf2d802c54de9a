// Package shopkit is an SDK for building merchant-facing platform apps.
//
// Its core concern is request authentication: deciding which
// previously-established session, if any, an inbound request belongs to.
// Embedded apps prove their identity with host-minted HS256 bearer tokens;
// standalone apps with signed session cookies. The session package
// reconciles both into one deterministic resolution.
//
// Packages:
//
//   - pkg/session — session entity, store contract and adapters (memory,
//     Redis, Postgres, MongoDB), id derivation, token validation, and the
//     current-session resolver with net/http middleware.
//   - pkg/jwt — HS256 signing and verification for host session tokens.
//   - pkg/cookie — signed session cookies with key rotation.
//   - pkg/config — env-tag configuration loading.
//   - pkg/logger — log/slog factory.
//
// OAuth authorization-code exchange, request signing, and webhook
// verification are deliberately out of scope; collaborators create sessions
// through the session.Store contract and the resolver reads them.
package shopkit
