package utils

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	var out map[string]int
	found, err := GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", map[string]int{"a": 1}, time.Minute))
	found, err = GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, out["a"])

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCachePrefix(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, SimilarUsersKey(1, "", "", 1), 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, SimilarUsersKey(1, "20", "30", 2), 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, SimilarUsersKey(12, "", "", 1), 1, time.Minute))

	require.NoError(t, DeleteCachePrefix(ctx, rdb, SimilarUsersPrefix(1)))
	assert.False(t, mr.Exists(SimilarUsersKey(1, "", "", 1)))
	assert.False(t, mr.Exists(SimilarUsersKey(1, "20", "30", 2)))
	assert.True(t, mr.Exists(SimilarUsersKey(12, "", "", 1)))
}

func TestDeleteCacheKeys(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("a", "1"))
	require.NoError(t, mr.Set("b", "2"))
	require.NoError(t, mr.Set("c", "3"))

	require.NoError(t, DeleteCache(ctx, rdb))
	require.NoError(t, DeleteCache(ctx, rdb, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	assert.True(t, mr.Exists("c"))
}

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	var out int
	found, err := GetCache(ctx, nil, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "k", 1, time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, "k"))
	assert.NoError(t, DeleteCachePrefix(ctx, nil, "k"))
	assert.NoError(t, Publish(ctx, nil, Notification{}))
}

func TestPublish(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, NotificationChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	require.NoError(t, Publish(ctx, rdb, Notification{Operation: OpRequest, UserID: 7, Payload: map[string]string{"from": "alice"}}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "friend-request", got.Type)
	assert.Equal(t, OpRequest, got.Operation)
	assert.EqualValues(t, 7, got.UserID)
}
