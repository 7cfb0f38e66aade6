package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func exerciseStore(t *testing.T, store SessionStore) {
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	w := filledWizard(t)
	require.NoError(t, store.Save(ctx, w.State()))

	loaded, err := store.Load(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, StepContactDetails, loaded.Step)
	assert.Equal(t, "Ngozi", loaded.Draft.Name)
	assert.True(t, loaded.Draft.Date.Equal(w.State().Draft.Date))

	locked, err := store.Locked(ctx, "w1")
	require.NoError(t, err)
	assert.False(t, locked)

	unlock, err := store.Lock(ctx, "w1")
	require.NoError(t, err)
	_, err = store.Lock(ctx, "w1")
	assert.ErrorIs(t, err, ErrSessionLocked)
	locked, err = store.Locked(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, locked)
	require.NoError(t, unlock(ctx))
	unlock, err = store.Lock(ctx, "w1")
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	require.NoError(t, store.Delete(ctx, "w1"))
	_, err = store.Load(ctx, "w1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	exerciseStore(t, store)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, State{ID: "a"}))
	now = now.Add(2 * time.Minute)
	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, State{ID: "a"}))
	assert.Equal(t, time.Hour, mr.TTL(store.key("a")))

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_UnlockKeepsForeignLock(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	unlock, err := store.Lock(ctx, "a")
	require.NoError(t, err)
	// Simulate the lock expiring and another request taking it.
	require.NoError(t, mr.Set(store.lockKey("a"), "other-token"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get(store.lockKey("a"))
	require.NoError(t, err)
	assert.Equal(t, "other-token", got)
}

func TestSaveRequiresID(t *testing.T) {
	store, _ := newRedisStore(t)
	assert.Error(t, store.Save(context.Background(), State{}))
	assert.Error(t, NewMemoryStore(0).Save(context.Background(), State{}))
}
