package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// The platform signs session tokens with HMAC-SHA256 and nothing else.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// RegisteredClaims mirrors the RFC 7519 registered claim set. Temporal
// claims use Unix timestamps; zero values are treated as unset.
type RegisteredClaims struct {
	ID        string `json:"jti,omitempty"` // unique token id
	Subject   string `json:"sub,omitempty"` // platform-side user id
	Issuer    string `json:"iss,omitempty"` // issuer URL
	Audience  string `json:"aud,omitempty"` // intended recipient, the app's API key
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims against the current time. Unset claims
// are skipped per RFC 7519.
func (c RegisteredClaims) Valid() error {
	now := time.Now().Unix()

	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return ErrNotYetValid
	}

	return nil
}

// Service signs and verifies compact HS256 tokens. The key never leaves
// process memory.
type Service struct {
	signingKey []byte
}

// New creates a Service with the provided signing key. The key should be at
// least 32 bytes for adequate HMAC-SHA256 security.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a Service from a string key, which is how the app's
// API secret arrives from configuration.
func NewFromString(signingKey string) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: []byte(signingKey)}, nil
}

// Sign produces a signed compact token from any JSON-serializable claims.
// Mostly useful to tests and to collaborators that mint tokens on the
// platform's behalf.
func (s *Service) Sign(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Parse verifies a token's signature and algorithm, unmarshals its claims
// into dest, and validates temporal claims when dest implements
// interface{ Valid() error }.
func (s *Service) Parse(tokenString string, dest any) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	// Verify the signature before decoding anything attacker-controlled.
	payload := parts[0] + "." + parts[1]
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(s.sign(payload))) != 1 {
		return ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return fmt.Errorf("%w: decode header: %w", ErrInvalidToken, err)
	}

	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return fmt.Errorf("%w: unmarshal header: %w", ErrInvalidToken, err)
	}
	if h.Algorithm != headerAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return fmt.Errorf("%w: decode claims: %w", ErrInvalidToken, err)
	}
	if err := json.Unmarshal(claimsJSON, dest); err != nil {
		return fmt.Errorf("%w: unmarshal claims: %w", ErrInvalidToken, err)
	}

	if validator, ok := dest.(interface{ Valid() error }); ok {
		if err := validator.Valid(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

// JWT segments use unpadded base64url per RFC 7515.
func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
