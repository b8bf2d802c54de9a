package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/session"
)

func TestRequireSession(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		w.Header().Set("X-Shop", sess.Shop)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes through with a valid session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		newStoredOnlineSession(t, store)
		resolver := newResolver(t, true, store)

		w := httptest.NewRecorder()
		resolver.RequireSession(true)(handler).
			ServeHTTP(w, requestWithBearer(signToken(t, testAPISecret, nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testShop, w.Header().Get("X-Shop"))
	})

	t.Run("rejects requests without a session", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, true, session.NewMemoryStore(0))

		w := httptest.NewRecorder()
		resolver.RequireSession(true)(handler).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects invalid bearer tokens", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		newStoredOnlineSession(t, store)
		resolver := newResolver(t, true, store)

		w := httptest.NewRecorder()
		resolver.RequireSession(true)(handler).
			ServeHTTP(w, requestWithBearer(signToken(t, "wrong-secret", nil)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("store failures are server errors", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, true, failingStore{err: assert.AnError})

		w := httptest.NewRecorder()
		resolver.RequireSession(true)(handler).
			ServeHTTP(w, requestWithBearer(signToken(t, testAPISecret, nil)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestWithCurrentSession(t *testing.T) {
	t.Parallel()

	t.Run("injects the session when present", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		stored := newStoredOnlineSession(t, store)
		resolver := newResolver(t, true, store)

		var seen *session.Session
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = session.FromContext(r.Context())
		})

		w := httptest.NewRecorder()
		resolver.WithCurrentSession(true)(handler).
			ServeHTTP(w, requestWithBearer(signToken(t, testAPISecret, nil)))

		require.NotNil(t, seen)
		assert.Equal(t, stored, seen)
	})

	t.Run("passes anonymous requests through", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, true, session.NewMemoryStore(0))

		var called bool
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			_, ok := session.FromContext(r.Context())
			assert.False(t, ok)
		})

		w := httptest.NewRecorder()
		resolver.WithCurrentSession(true)(handler).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("still rejects malformed proofs", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, true, session.NewMemoryStore(0))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Not a Bearer token!")

		w := httptest.NewRecorder()
		resolver.WithCurrentSession(true)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
