package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, time.Minute, nil), mr
}

type payload struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

func TestRedis_JSONRoundTripAndTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "matches:u1", []payload{{Title: "a", Score: 95}}, 0))
	require.Equal(t, time.Minute, mr.TTL("matches:u1"))

	var got []payload
	ok, err := c.GetJSON(ctx, "matches:u1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []payload{{Title: "a", Score: 95}}, got)

	mr.FastForward(2 * time.Minute)
	ok, err = c.GetJSON(ctx, "matches:u1", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"policies:list:a", "policies:list:b", "matches:u1"} {
		require.NoError(t, mr.Set(k, "{}"))
	}

	n, err := c.DeleteByPattern(ctx, "policies:list:*")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.False(t, mr.Exists("policies:list:a"))
	require.True(t, mr.Exists("matches:u1"))

	require.NoError(t, c.Delete(ctx, "matches:u1"))
	require.False(t, mr.Exists("matches:u1"))
}

func TestRedis_SetIfNotExists(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetIfNotExists(ctx, "sync:lock", "1", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.SetIfNotExists(ctx, "sync:lock", "1", time.Second)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis_UnavailableBypasses(t *testing.T) {
	var c *Redis
	ctx := context.Background()

	require.False(t, c.Available())
	require.NoError(t, c.SetJSON(ctx, "k", 1, 0))

	var out int
	ok, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := c.DeleteByPattern(ctx, "*")
	require.NoError(t, err)
	require.Zero(t, n)
	require.Error(t, c.Ping(ctx))

	locked, err := c.SetIfNotExists(ctx, "sync:lock", "1", time.Second)
	require.NoError(t, err)
	require.True(t, locked)
}
