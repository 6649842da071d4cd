package session_test

import (
	"context"
	"testing"

	"tickify/internal/session"
	"tickify/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(cleanup)
	require.NoError(t, rdb.Del(context.Background(), session.RootKey).Err())
	return rdb
}

func TestRedisPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := setupRedis(t)

	first := session.NewStore(session.NewRedisPersister(rdb))
	first.SetSession(ctx, session.User{ID: "u1", Email: "a@b.c"}, "tok")

	// 固定 key 落地，新 store 可還原
	second := session.NewStore(session.NewRedisPersister(rdb))
	require.NoError(t, second.Restore(ctx))
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "u1", second.User().ID)

	second.Logout(ctx)

	third := session.NewStore(session.NewRedisPersister(rdb))
	require.NoError(t, third.Restore(ctx))
	assert.False(t, third.IsAuthenticated())
}

func TestRedisPersister_LoadWithoutSavedSession(t *testing.T) {
	ctx := context.Background()
	rdb := setupRedis(t)

	store := session.NewStore(session.NewRedisPersister(rdb))
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())
}
