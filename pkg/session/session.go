package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated context between the app and a shop.
// Sessions are created by the OAuth exchange, read by the resolver, and
// never mutated during resolution.
type Session struct {
	// ID is unique per store. Offline ids are a deterministic function of
	// the shop domain; online ids derive from shop and token subject;
	// cookie-established sessions use a random id.
	ID    string `json:"id"`
	Shop  string `json:"shop"`
	State string `json:"state,omitempty"`

	// IsOnline distinguishes user-scoped sessions with an expiry from
	// long-lived shop-scoped ones. Resolution never substitutes one mode
	// for the other.
	IsOnline bool `json:"is_online"`

	AccessToken string     `json:"access_token,omitempty"`
	Scope       string     `json:"scope,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	// OnlineAccessInfo carries the platform-side user the session is scoped
	// to. Only set on online sessions; carried through storage untouched.
	OnlineAccessInfo *OnlineAccessInfo `json:"online_access_info,omitempty"`
}

// OnlineAccessInfo describes the platform user behind an online session.
type OnlineAccessInfo struct {
	UserID        int64  `json:"user_id"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	AccountOwner  bool   `json:"account_owner,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Collaborator  bool   `json:"collaborator,omitempty"`
	UserScope     string `json:"user_scope,omitempty"`
}

// New creates a session with the given identity. Access token, scope, and
// expiry are filled in by the OAuth exchange after the token grant.
func New(id, shop, state string, isOnline bool) *Session {
	return &Session{
		ID:       id,
		Shop:     shop,
		State:    state,
		IsOnline: isOnline,
	}
}

// NewCookieSessionID generates a random id for a cookie-established session.
// Unlike offline and online ids it carries no structure; the signed cookie
// is the only way back to it.
func NewCookieSessionID() string {
	return uuid.NewString()
}

// IsExpired reports whether the session's access token has expired. Sessions
// without an expiry (offline sessions) never expire.
func (s *Session) IsExpired() bool {
	return s != nil && s.ExpiresAt != nil && time.Now().After(*s.ExpiresAt)
}

// Expired reports whether the session expires within the given cutoff,
// letting callers refresh shortly before the hard deadline.
func (s *Session) Expired(within time.Duration) bool {
	return s != nil && s.ExpiresAt != nil && time.Now().Add(within).After(*s.ExpiresAt)
}
