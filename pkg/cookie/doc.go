// Package cookie manages the SDK's session cookies.
//
// Standalone (non-embedded) apps carry their current-session id in a named
// browser cookie. The cookie's value is an opaque session id; what matters is
// its integrity, not its secrecy, so the manager signs values with
// HMAC-SHA256 and verifies them on read. Multiple secrets are supported so
// keys can be rotated without invalidating live sessions.
//
// # Usage
//
//	mgr, err := cookie.New([]string{"at-least-32-characters-long-secret"})
//	if err != nil {
//	    // handle error
//	}
//
//	// Write the session id after the OAuth exchange stored the session.
//	_ = mgr.SetSigned(w, "shopkit_session", sess.ID)
//
//	// Read it back during resolution.
//	id, err := mgr.GetSigned(r, "shopkit_session")
package cookie
