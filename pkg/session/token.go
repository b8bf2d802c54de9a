package session

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopkit/shopkit/pkg/jwt"
)

// TokenPayload is the claim set of a host-minted session token. Beyond the
// registered claims, dest names the shop the token was minted for and sid
// groups tokens of one host session generation. Online-session id
// derivation uses the subject; sid is carried through as an extension point
// for token-exchange grant variants and never consulted here.
type TokenPayload struct {
	jwt.RegisteredClaims
	Dest string `json:"dest,omitempty"`
	Sid  string `json:"sid,omitempty"`
}

// Shop returns the normalized shop domain the token was minted for. Only
// meaningful after validation, which guarantees dest and iss agree.
func (p *TokenPayload) Shop() (string, error) {
	dest, err := url.Parse(p.Dest)
	if err != nil || dest.Host == "" {
		return "", fmt.Errorf("%w: malformed dest claim %q", ErrInvalidToken, p.Dest)
	}
	return NormalizeShopDomain(dest.Host)
}

// TokenValidator verifies host-minted session tokens: HS256 signature under
// the app's API secret, temporal claims, and the claim cross-checks that
// guard against shop-identity spoofing.
type TokenValidator struct {
	svc    *jwt.Service
	apiKey string
}

// NewTokenValidator creates a validator for the app identified by apiKey,
// with apiSecret as the symmetric signing key.
func NewTokenValidator(apiKey, apiSecret string) (*TokenValidator, error) {
	svc, err := jwt.NewFromString(apiSecret)
	if err != nil {
		return nil, err
	}
	return &TokenValidator{svc: svc, apiKey: apiKey}, nil
}

// claimChecks run in order after signature and temporal validation; each
// produces its own failure reason so callers can tell claims apart.
var claimChecks = []struct {
	name  string
	check func(v *TokenValidator, p *TokenPayload) error
}{
	{"audience", func(v *TokenValidator, p *TokenPayload) error {
		if p.Audience != v.apiKey {
			return fmt.Errorf("audience %q does not match the app's API key", p.Audience)
		}
		return nil
	}},
	{"destination", func(v *TokenValidator, p *TokenPayload) error {
		dest, err := url.Parse(p.Dest)
		if err != nil || dest.Host == "" {
			return fmt.Errorf("malformed dest claim %q", p.Dest)
		}
		if dest.Scheme != "https" {
			return fmt.Errorf("dest claim %q is not an https shop URL", p.Dest)
		}
		return nil
	}},
	{"issuer", func(v *TokenValidator, p *TokenPayload) error {
		iss, err := url.Parse(p.Issuer)
		if err != nil || iss.Host == "" {
			return fmt.Errorf("malformed iss claim %q", p.Issuer)
		}
		// The host mints tokens with iss = "https://{shop}/admin". Stripping
		// the admin path, the issuer must name the same shop as dest, or the
		// token was minted for a different tenant.
		issuerShop := iss.Host
		if dest, err := url.Parse(p.Dest); err == nil && !strings.EqualFold(issuerShop, dest.Host) {
			return fmt.Errorf("iss host %q does not match dest host %q", issuerShop, dest.Host)
		}
		return nil
	}},
}

// Validate verifies a raw session token and returns its payload.
// Failures are wrapped in ErrInvalidToken with the specific reason; they are
// fatal to the resolution call that triggered them.
func (v *TokenValidator) Validate(token string) (*TokenPayload, error) {
	var payload TokenPayload
	if err := v.svc.Parse(token, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	for _, c := range claimChecks {
		if err := c.check(v, &payload); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidToken, c.name, err)
		}
	}

	return &payload, nil
}
