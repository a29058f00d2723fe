package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisClient connects to a local redis on DB 15 or skips the test
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLocker_Exclusive(t *testing.T) {
	c := redisClient(t)
	ctx := context.Background()
	key := "test:lock:exclusive"
	require.NoError(t, c.Del(ctx, key).Err())

	l := NewLocker(c)
	unlock, err := l.Lock(ctx, key, time.Second)
	require.NoError(t, err)

	_, err = l.Lock(ctx, key, time.Second)
	assert.ErrorIs(t, err, ErrLockHeld)

	unlock()
	unlock2, err := l.Lock(ctx, key, time.Second)
	require.NoError(t, err)
	unlock2()
}

func TestLocker_ReleaseKeepsForeignLock(t *testing.T) {
	c := redisClient(t)
	ctx := context.Background()
	key := "test:lock:foreign"
	require.NoError(t, c.Del(ctx, key).Err())

	unlock, err := NewLocker(c).Lock(ctx, key, time.Second)
	require.NoError(t, err)

	// simulate expiry and takeover by another holder
	require.NoError(t, c.Set(ctx, key, "someone-else", time.Second).Err())
	unlock()

	v, err := c.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}
