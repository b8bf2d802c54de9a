package session

// Config is the read-only app configuration the resolver consumes.
type Config struct {
	// IsEmbeddedApp selects the preferred proof channel: embedded apps
	// present host-minted bearer tokens and fall back to cookies only when
	// no Authorization header is sent; standalone apps use cookies alone.
	IsEmbeddedApp bool `env:"SHOPKIT_EMBEDDED_APP" envDefault:"true"`

	// APIKey is the app's public identifier, expected in the aud claim of
	// every session token.
	APIKey string `env:"SHOPKIT_API_KEY"`

	// APISecret is the HMAC-SHA256 key session tokens are signed with.
	APISecret string `env:"SHOPKIT_API_SECRET"`

	// CookieName is the name of the signed cookie carrying the session id
	// for standalone apps (default: "shopkit_session").
	CookieName string `env:"SHOPKIT_SESSION_COOKIE" envDefault:"shopkit_session"`
}

// DefaultConfig returns the default resolver configuration. API key and
// secret have no defaults; they come from the app's platform registration.
func DefaultConfig() Config {
	return Config{
		IsEmbeddedApp: true,
		CookieName:    "shopkit_session",
	}
}
