package session

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/shopkit/shopkit/pkg/cookie"
)

// proof is the credential artifact one channel extracted from a request.
// Exactly one field is set: a raw bearer token from the Authorization
// header, or a session id read from the signed cookie.
type proof struct {
	bearerToken string
	sessionID   string
}

// A proofSource inspects a single proof channel of a request. It reports
// whether its channel produced a proof at all; a malformed proof is an
// error, never a silent absence. The distinction matters: absence falls
// through to the next channel, malformation aborts the resolution.
type proofSource interface {
	extract(r *http.Request) (proof, bool, error)
}

// The header must be exactly "Bearer" plus one token. Anything else that is
// non-empty is a malformed proof.
var bearerRe = regexp.MustCompile(`^Bearer (.+)$`)

// bearerSource reads host-minted session tokens from the Authorization
// header. Used by embedded apps only.
type bearerSource struct{}

func (bearerSource) extract(r *http.Request) (proof, bool, error) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return proof{}, false, nil
	}

	matches := bearerRe.FindStringSubmatch(raw)
	if matches == nil {
		return proof{}, false, fmt.Errorf("%w: %q", ErrMissingProof, raw)
	}

	return proof{bearerToken: matches[1]}, true, nil
}

// cookieSource reads the session id from the named signed cookie. The value
// is the session id verbatim; its integrity rests on the cookie signature,
// so a missing, unsigned, or tampered cookie all count as absence.
type cookieSource struct {
	cookies *cookie.Manager
	name    string
}

func (s cookieSource) extract(r *http.Request) (proof, bool, error) {
	id, err := s.cookies.GetSigned(r, s.name)
	if err != nil || id == "" {
		return proof{}, false, nil
	}
	return proof{sessionID: id}, true, nil
}
