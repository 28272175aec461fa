package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRedisStore_ReadWriteDelete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Read(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Write(ctx, "users", []byte(`[{"id":"admin1"}]`)))

	doc, err := store.Read(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"admin1"}]`, string(doc))

	require.NoError(t, store.Delete(ctx, "users"))

	_, err = store.Read(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_DeleteAbsentKeyIsIdempotent(t *testing.T) {
	store := newTestRedisStore(t)

	assert.NoError(t, store.Delete(context.Background(), "never-written"))
}

func TestRedisStore_ConnectFailure(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
