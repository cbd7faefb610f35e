package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type category struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1))

	var v int
	ok, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
}

// newRedis starts a throwaway Redis container. The test is skipped when
// Docker is not reachable.
func newRedis(t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.Run("redis", "7-alpine", nil)
	require.NoError(t, err)
	require.NoError(t, resource.Expire(120))
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp")),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	require.NoError(t, pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}))

	return client
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	client := newRedis(t)
	c := NewRedisCacheWithClient(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	var got []category
	ok, err := c.Get(ctx, "gallery:categories", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []category{{Name: "events", Count: 3}, {Name: "team", Count: 1}}
	require.NoError(t, c.Set(ctx, "gallery:categories", want))

	ok, err = c.Get(ctx, "gallery:categories", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	ttl, err := client.TTL(ctx, keyPrefix+"gallery:categories").Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5)

	require.NoError(t, c.Delete(ctx, "gallery:categories"))
	ok, err = c.Get(ctx, "gallery:categories", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
