package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedisStore creates a RedisStore against an in-process server
func setupTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_LoadMissing(t *testing.T) {
	store, _ := setupTestRedisStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_SaveUsesStorageKey(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	require.NoError(t, store.Save(context.Background(), sampleDocument()))

	raw, err := mr.Get(StorageKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"fullName":"Alex Rivera"`)
	assert.Equal(t, 0, int(mr.TTL(StorageKey)))
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestRedisStore(t)
	doc := sampleDocument()

	require.NoError(t, store.Save(ctx, doc))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestRedisStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedisStore(t)
	require.NoError(t, store.Save(ctx, sampleDocument()))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists(StorageKey))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	require.NoError(t, mr.Set(StorageKey, "{oops"))

	_, err := store.Load(context.Background())
	var corrupt *CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}

func TestRedisStore_PingFailsWhenServerDown(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), sampleDocument()))
	assert.True(t, mr.Exists(StorageKey))
}

func TestConnectRedis_BadURL(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}
