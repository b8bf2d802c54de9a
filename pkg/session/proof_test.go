package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/cookie"
)

// The absence-vs-malformed distinction lives in the proof sources; test them
// directly so the resolver tests can focus on orchestration.

func TestBearerSource(t *testing.T) {
	t.Parallel()

	t.Run("absent header is not a proof", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok, err := bearerSource{}.extract(r)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("well-formed bearer token", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer some.jwt.token")

		p, ok, err := bearerSource{}.extract(r)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "some.jwt.token", p.bearerToken)
		assert.Empty(t, p.sessionID)
	})

	t.Run("malformed header is an error, not absence", func(t *testing.T) {
		t.Parallel()

		for _, value := range []string{
			"Not a Bearer token!",
			"Bearer",
			"Bearer ",
			"Basic dXNlcjpwYXNz",
			"bearer lowercase-prefix",
		} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", value)

			_, ok, err := bearerSource{}.extract(r)
			require.ErrorIs(t, err, ErrMissingProof, "header %q", value)
			assert.False(t, ok, "header %q", value)
		}
	})
}

func TestCookieSource(t *testing.T) {
	t.Parallel()

	const cookieName = "shopkit_session"

	mgr, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	src := cookieSource{cookies: mgr, name: cookieName}

	t.Run("absent cookie is not a proof", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok, err := src.extract(r)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("signed cookie yields the session id verbatim", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(w, cookieName, "offline_example.myshopify.io"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}

		p, ok, err := src.extract(r)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "offline_example.myshopify.io", p.sessionID)
		assert.Empty(t, p.bearerToken)
	})

	t.Run("tampered cookie counts as absence", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: "forged-session-id"})

		_, ok, err := src.extract(r)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
