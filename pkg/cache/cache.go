package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist or has expired.
var ErrMiss = errors.New("cache miss")

// Store is a namespaced key/value store with expiry.
type Store interface {
	Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error
	Get(ctx context.Context, namespace, key string) (string, error)
	Delete(ctx context.Context, namespace, key string) error
	GetTTL(ctx context.Context, namespace, key string) (time.Duration, error)
	IncrWithExpire(ctx context.Context, namespace, key string, window time.Duration) (int64, error)
}

type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient connects and pings; the caller owns Close.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *RedisCache) Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, namespace+":"+key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, namespace, key string) (string, error) {
	val, err := c.client.Get(ctx, namespace+":"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (c *RedisCache) Delete(ctx context.Context, namespace, key string) error {
	return c.client.Del(ctx, namespace+":"+key).Err()
}

func (c *RedisCache) GetTTL(ctx context.Context, namespace, key string) (time.Duration, error) {
	return c.client.TTL(ctx, namespace+":"+key).Result()
}

func (c *RedisCache) IncrWithExpire(ctx context.Context, namespace, key string, window time.Duration) (int64, error) {
	countKey := namespace + ":" + key

	cnt, err := c.client.Incr(ctx, countKey).Result()
	if err != nil {
		return 0, err
	}

	if cnt == 1 {
		_ = c.client.Expire(ctx, countKey, window).Err()
	}

	return cnt, nil
}
