package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianlink/portal/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(client)
	store.now = func() time.Time { return now }
	return store, mr, &now
}

func testSession(now time.Time, ttl time.Duration) domain.Session {
	return domain.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Email:     "a@example.com",
		Roles:     domain.RolesFor(true),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store, mr, now := newTestStore(t)
	ctx := context.Background()
	sess := testSession(*now, time.Hour)

	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, time.Hour, mr.TTL("session:sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Email, got.Email)
	assert.Equal(t, sess.Roles, got.Roles)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "sess-1"), "deleting twice is not an error")
	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_KeyExpires(t *testing.T) {
	store, mr, now := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSession(*now, time.Minute)))

	mr.FastForward(time.Minute + time.Second)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_ExpiredPayloadIsRemoved(t *testing.T) {
	store, mr, now := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSession(*now, time.Minute)))

	// Clock moves past ExpiresAt while the key is still present.
	*now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, mr.Exists("session:sess-1"))
}

func TestSessionStore_Rejections(t *testing.T) {
	store, _, now := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, domain.Session{ExpiresAt: now.Add(time.Hour)}))
	assert.Error(t, store.Save(ctx, testSession(*now, -time.Second)))

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
