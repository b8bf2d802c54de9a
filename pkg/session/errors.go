package session

import "errors"

var (
	// ErrSessionNotFound is the store sentinel for an absent session id.
	// The resolver maps it to a nil session, never to a failure.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrMissingProof indicates an Authorization header that is present but
	// not a well-formed "Bearer <token>" value.
	ErrMissingProof = errors.New("session.malformed_authorization_header")

	// ErrInvalidToken indicates a bearer token that failed signature,
	// temporal, or claim validation. Wrapped errors carry the exact reason.
	ErrInvalidToken = errors.New("session.invalid_token")

	// ErrInvalidShopDomain indicates a shop value that is not a valid
	// platform shop domain.
	ErrInvalidShopDomain = errors.New("session.invalid_shop_domain")

	// ErrInvalidSession indicates a session that cannot be persisted,
	// typically one with an empty id.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrNoStore indicates a resolver constructed without a store.
	ErrNoStore = errors.New("session.no_store")

	// ErrNoCookieManager indicates a non-embedded resolver constructed
	// without a cookie manager, leaving it no proof channel at all.
	ErrNoCookieManager = errors.New("session.no_cookie_manager")
)
