package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("store and load", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		sess := session.New("offline_example.myshopify.io", "example.myshopify.io", "", false)
		sess.AccessToken = "shpat_abc"

		require.NoError(t, store.Store(ctx, sess))

		loaded, err := store.Load(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess, loaded)
	})

	t.Run("load returns a copy", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		sess := session.New("id", "example.myshopify.io", "", false)
		require.NoError(t, store.Store(ctx, sess))

		loaded, err := store.Load(ctx, "id")
		require.NoError(t, err)
		loaded.AccessToken = "mutated"

		again, err := store.Load(ctx, "id")
		require.NoError(t, err)
		assert.Empty(t, again.AccessToken)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		_, err := store.Load(ctx, "absent")
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("store overwrites by id", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		first := session.New("id", "example.myshopify.io", "", false)
		first.AccessToken = "first"
		second := session.New("id", "example.myshopify.io", "", false)
		second.AccessToken = "second"

		require.NoError(t, store.Store(ctx, first))
		require.NoError(t, store.Store(ctx, second))
		assert.Equal(t, 1, store.Len())

		loaded, err := store.Load(ctx, "id")
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.AccessToken)
	})

	t.Run("rejects invalid sessions", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		require.ErrorIs(t, store.Store(ctx, nil), session.ErrInvalidSession)
		require.ErrorIs(t, store.Store(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		sess := session.New("id", "example.myshopify.io", "", false)
		require.NoError(t, store.Store(ctx, sess))
		require.NoError(t, store.Delete(ctx, "id"))

		_, err := store.Load(ctx, "id")
		require.ErrorIs(t, err, session.ErrSessionNotFound)

		// Deleting again is fine.
		require.NoError(t, store.Delete(ctx, "id"))
	})

	t.Run("delete expired keeps offline sessions", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)

		expired := time.Now().Add(-time.Minute)
		online := session.New("example.myshopify.io_1", "example.myshopify.io", "", true)
		online.ExpiresAt = &expired
		offline := session.New("offline_example.myshopify.io", "example.myshopify.io", "", false)

		require.NoError(t, store.Store(ctx, online))
		require.NoError(t, store.Store(ctx, offline))
		require.NoError(t, store.DeleteExpired(ctx))

		_, err := store.Load(ctx, online.ID)
		require.ErrorIs(t, err, session.ErrSessionNotFound)

		_, err = store.Load(ctx, offline.ID)
		require.NoError(t, err)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				sess := session.New(session.NewCookieSessionID(), "example.myshopify.io", "", n%2 == 0)
				_ = store.Store(ctx, sess)
				_, _ = store.Load(ctx, sess.ID)
				_ = store.Delete(ctx, sess.ID)
			}(i)
		}
		wg.Wait()
		assert.Zero(t, store.Len())
	})

	t.Run("background cleanup", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(10 * time.Millisecond)
		defer store.Close()

		expired := time.Now().Add(-time.Minute)
		online := session.New("id", "example.myshopify.io", "", true)
		online.ExpiresAt = &expired
		require.NoError(t, store.Store(ctx, online))

		assert.Eventually(t, func() bool {
			_, err := store.Load(ctx, "id")
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})
}
