package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/env"
)

// ErrLockHeld is returned by Lock when another holder owns the key
var ErrLockHeld = errors.New("lock is held by another process")

var (
	client *redis.Client
	ctx    = context.Background()
)

// releaseScript deletes the lock only if it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SetupCache initializes the connection to the redis server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0, // sessions use DB 1
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		zap.L().Warn("could not connect to cache", zap.Error(err))
	} else {
		zap.L().Info("connected to cache", zap.String("pong", pong))
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// Delete removes a value from the cache by key
func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}

// Locker hands out short-lived exclusive locks stored in redis
type Locker struct {
	client *redis.Client
}

// NewLocker returns a locker on the given client, or on the shared client when nil
func NewLocker(c *redis.Client) *Locker {
	if c == nil {
		c = GetClient()
	}
	return &Locker{client: c}
}

// Lock acquires key for ttl. The returned func releases the lock if it is
// still ours; an expired lock is left alone.
func (l *Locker) Lock(c context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(c, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return func() {
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			zap.L().Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
