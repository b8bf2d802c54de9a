// Package jwt signs and verifies the HS256 tokens the platform host mints
// for embedded apps.
//
// The platform issues session tokens with a fixed HMAC-SHA256 algorithm; the
// app's API secret is the symmetric key. This package implements exactly that
// profile: a Service that signs and verifies compact JWTs, RegisteredClaims
// mirroring the RFC 7519 registered fields, and sentinel errors comparable
// with errors.Is. Tokens using any other algorithm are rejected outright to
// prevent algorithm-confusion downgrades.
//
// Claim semantics beyond signature and time validity (audience, issuer and
// destination cross-checks) belong to the session package, which layers them
// on top of Parse.
//
// # Usage
//
//	svc, err := jwt.NewFromString(apiSecret)
//	if err != nil {
//	    // handle error
//	}
//
//	var claims jwt.RegisteredClaims
//	if err := svc.Parse(token, &claims); err != nil {
//	    // invalid signature, expired, malformed, ...
//	}
package jwt
